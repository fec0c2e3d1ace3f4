package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/greetcard/internal/card"
)

const (
	minCardWidth  = 24
	maxCardWidth  = 64
	coverHeight   = 11
	borderPadding = 4
)

// Options controls card rendering
type Options struct {
	// Width is the outer width available; zero uses the terminal width
	Width int
}

func (o Options) innerWidth() int {
	width := o.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	return clampInt(width-borderPadding, minCardWidth, maxCardWidth)
}

func frame(scheme card.ColorScheme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Primary)).
		Background(lipgloss.Color(scheme.Background)).
		Width(width)
}

// Cover renders the front of a card: the decoration field with the card
// title and recipient laid over its middle rows
func Cover(c card.Card, opts Options) string {
	width := opts.innerWidth()

	f := newField(width, coverHeight)
	f.decorate(c.Decorations, c.ColorScheme)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.ColorScheme.Primary))
	middle := coverHeight / 2
	f.overlay(middle, " "+c.Type.Label()+" ", title)
	if c.Recipient != "" {
		sub := lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorScheme.Secondary))
		f.overlay(middle+1, " 致 "+c.Recipient+" ", sub)
	}

	return frame(c.ColorScheme, width).Render(strings.Join(f.lines(), "\n"))
}

// Inside renders the message page of a card
func Inside(c card.Card, opts Options) string {
	width := opts.innerWidth()
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorScheme.Text))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorScheme.Accent))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorScheme.Secondary)).Italic(true)

	var sections []string
	if c.Recipient != "" {
		sections = append(sections, accent.Render("致 "+c.Recipient), "")
	}
	for _, line := range WrapText(c.Message, width-2) {
		sections = append(sections, text.Render(line))
	}
	if c.Sender != "" {
		sections = append(sections, "", lipgloss.PlaceHorizontal(width-2, lipgloss.Right, accent.Render("—— "+c.Sender)))
	}
	if c.MusicURL != "" {
		sections = append(sections, "", muted.Render("♪ "+c.MusicURL))
	}

	return frame(c.ColorScheme, width).Padding(1, 1).Render(strings.Join(sections, "\n"))
}

// Card renders the cover above the inside page
func Card(c card.Card, opts Options) string {
	return lipgloss.JoinVertical(lipgloss.Left, Cover(c, opts), Inside(c, opts))
}

// WrapText breaks text into lines no wider than width terminal cells. Lines
// break at spaces when possible and anywhere for scripts written without them.
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		result = append(result, wrapParagraph(paragraph, width)...)
	}
	return result
}

func wrapParagraph(text string, width int) []string {
	var lines []string
	var current []rune
	currentWidth := 0
	lastSpace := -1

	for _, r := range text {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width && len(current) > 0 {
			if lastSpace > 0 && r != ' ' {
				lines = append(lines, string(current[:lastSpace]))
				current = append([]rune{}, current[lastSpace+1:]...)
			} else {
				lines = append(lines, strings.TrimRight(string(current), " "))
				current = current[:0]
			}
			currentWidth = lipgloss.Width(string(current))
			lastSpace = -1
			if r == ' ' && len(current) == 0 {
				continue
			}
		}
		if r == ' ' {
			lastSpace = len(current)
		}
		current = append(current, r)
		currentWidth += w
	}

	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, string(current))
	}
	return lines
}
