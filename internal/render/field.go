package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/greetcard/internal/card"
)

// glyphs are the terminal stand-ins for decoration shapes
var glyphs = map[card.DecorationType]rune{
	card.Flowers:    '✿',
	card.Stars:      '★',
	card.Hearts:     '♥',
	card.Balloons:   '●',
	card.Snowflakes: '❄',
	card.Leaves:     '❦',
	card.Confetti:   '✦',
	card.Ribbon:     '∞',
}

// largeDecoration is the size from which a glyph is drawn bold
const largeDecoration = 35.0

// Glyph returns the character drawn for a decoration type
func Glyph(d card.DecorationType) rune {
	if g, ok := glyphs[d]; ok {
		return g
	}
	return '·'
}

// GlyphColor blends the scheme accent over its background by opacity
func GlyphColor(scheme card.ColorScheme, opacity float64) string {
	background, err := colorful.Hex(scheme.Background)
	if err != nil {
		background = colorful.Color{R: 1, G: 1, B: 1}
	}
	accent, err := colorful.Hex(scheme.Accent)
	if err != nil {
		return background.Hex()
	}
	return background.BlendRgb(accent, math.Max(0, math.Min(1, opacity))).Clamped().Hex()
}

// cell is one terminal column of the field. A wide rune spans two cells;
// the second is marked as a continuation and renders nothing.
type cell struct {
	text         string
	continuation bool
}

// field is a width by height grid of rendered cells
type field struct {
	width  int
	height int
	cells  [][]cell
}

func newField(width, height int) *field {
	f := &field{width: width, height: height, cells: make([][]cell, height)}
	for y := range f.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{text: " "}
		}
		f.cells[y] = row
	}
	return f
}

// place maps percentage coordinates onto the grid
func (f *field) place(p card.Position) (int, int) {
	x := int(math.Round(p.X / 100 * float64(f.width-1)))
	y := int(math.Round(p.Y / 100 * float64(f.height-1)))
	return clampInt(x, 0, f.width-1), clampInt(y, 0, f.height-1)
}

// decorate draws decorations, most opaque last so it stays on top
func (f *field) decorate(decorations []card.Decoration, scheme card.ColorScheme) {
	ordered := make([]card.Decoration, len(decorations))
	copy(ordered, decorations)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Opacity < ordered[j].Opacity })

	for _, d := range ordered {
		x, y := f.place(d.Position)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(GlyphColor(scheme, d.Opacity)))
		if d.Size >= largeDecoration {
			style = style.Bold(true)
		}
		f.cells[y][x] = cell{text: style.Render(string(Glyph(d.Type)))}
	}
}

// overlay writes text centered on row y, replacing the cells beneath it
func (f *field) overlay(y int, text string, style lipgloss.Style) {
	if y < 0 || y >= f.height || text == "" {
		return
	}

	var runes []rune
	used := 0
	for _, r := range text {
		w := lipgloss.Width(string(r))
		if used+w > f.width {
			break
		}
		runes = append(runes, r)
		used += w
	}

	x := (f.width - used) / 2
	for _, r := range runes {
		f.cells[y][x] = cell{text: style.Render(string(r))}
		w := lipgloss.Width(string(r))
		for i := 1; i < w; i++ {
			f.cells[y][x+i] = cell{continuation: true}
		}
		x += w
	}
}

func (f *field) lines() []string {
	out := make([]string, f.height)
	for y, row := range f.cells {
		var b strings.Builder
		for _, c := range row {
			if !c.continuation {
				b.WriteString(c.text)
			}
		}
		out[y] = b.String()
	}
	return out
}

// Field draws decorations as colored glyphs on a width by height grid
func Field(decorations []card.Decoration, scheme card.ColorScheme, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	f := newField(width, height)
	f.decorate(decorations, scheme)
	return f.lines()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
