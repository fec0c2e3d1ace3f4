package pack

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	playground "github.com/go-playground/validator/v10"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/config"
)

// Pack holds the content tables the generator draws from
type Pack struct {
	ID          string
	Name        string
	Version     string
	Description string
	Path        string

	Messages     map[card.Type][]string
	ColorSchemes map[card.Theme]card.ColorScheme
	Music        map[card.Type][]string
	Patterns     map[card.Type][]card.DecorationType

	// Fallbacks lists the table entries that came from the built-in pack
	// because the loaded file did not define them
	Fallbacks []string
}

// Default returns the built-in pack. Every call returns fresh maps.
func Default() *Pack {
	return &Pack{
		ID:           DefaultID,
		Name:         "Built-in greetings",
		Version:      "1.0",
		Description:  "Chinese greeting templates, five color themes and eight occasions",
		Messages:     defaultMessages(),
		ColorSchemes: defaultColorSchemes(),
		Music:        defaultMusic(),
		Patterns:     defaultPatterns(),
	}
}

// MessagesFor returns the templates of a card type
func (p *Pack) MessagesFor(t card.Type) ([]string, error) {
	msgs, ok := p.Messages[t]
	if !ok || len(msgs) == 0 {
		return nil, fmt.Errorf("no messages for card type: %s", t)
	}
	return msgs, nil
}

// ColorScheme returns the scheme of a theme
func (p *Pack) ColorScheme(t card.Theme) (card.ColorScheme, error) {
	scheme, ok := p.ColorSchemes[t]
	if !ok {
		return card.ColorScheme{}, fmt.Errorf("no color scheme for theme: %s", t)
	}
	return scheme, nil
}

// MusicFor returns the track list of a card type
func (p *Pack) MusicFor(t card.Type) ([]string, error) {
	tracks, ok := p.Music[t]
	if !ok || len(tracks) == 0 {
		return nil, fmt.Errorf("no music for card type: %s", t)
	}
	return tracks, nil
}

// PatternsFor returns the decoration set of a card type
func (p *Pack) PatternsFor(t card.Type) ([]card.DecorationType, error) {
	patterns, ok := p.Patterns[t]
	if !ok || len(patterns) == 0 {
		return nil, fmt.Errorf("no decoration patterns for card type: %s", t)
	}
	return patterns, nil
}

// File is the on-disk TOML layout of a pack
type File struct {
	Pack         Header                      `toml:"pack"`
	Messages     map[string][]string         `toml:"messages"`
	ColorSchemes map[string]card.ColorScheme `toml:"color_schemes"`
	Music        map[string][]string         `toml:"music"`
	Patterns     map[string][]string         `toml:"patterns"`
}

// Header is the [pack] section of a pack file
type Header struct {
	ID          string `toml:"id" validate:"required"`
	Name        string `toml:"name" validate:"required"`
	Version     string `toml:"version" validate:"required"`
	Description string `toml:"description"`
}

// DecodeFile reads a pack file without interpreting it
func DecodeFile(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("pack file not found: %s", path)
	}

	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("error parsing pack file: %w", err)
	}
	return &f, nil
}

// Load reads a pack file. Names that are not known types, themes or
// decorations are rejected; entries the file leaves out fall back to the
// built-in pack and are recorded in Fallbacks.
func Load(path string) (*Pack, error) {
	f, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	p, err := fromFile(f)
	if err != nil {
		return nil, fmt.Errorf("error loading pack %s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

func fromFile(f *File) (*Pack, error) {
	base := Default()
	p := &Pack{
		ID:           f.Pack.ID,
		Name:         f.Pack.Name,
		Version:      f.Pack.Version,
		Description:  f.Pack.Description,
		Messages:     make(map[card.Type][]string),
		ColorSchemes: make(map[card.Theme]card.ColorScheme),
		Music:        make(map[card.Type][]string),
		Patterns:     make(map[card.Type][]card.DecorationType),
	}

	for name, msgs := range f.Messages {
		t, err := card.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("messages: %w", err)
		}
		if err := checkList("messages."+name, msgs); err != nil {
			return nil, err
		}
		p.Messages[t] = msgs
	}

	for name, scheme := range f.ColorSchemes {
		t, err := card.ParseTheme(name)
		if err != nil {
			return nil, fmt.Errorf("color_schemes: %w", err)
		}
		if err := checkScheme(name, scheme); err != nil {
			return nil, err
		}
		p.ColorSchemes[t] = scheme
	}

	for name, tracks := range f.Music {
		t, err := card.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("music: %w", err)
		}
		if err := checkList("music."+name, tracks); err != nil {
			return nil, err
		}
		p.Music[t] = tracks
	}

	for name, patterns := range f.Patterns {
		t, err := card.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("patterns: %w", err)
		}
		if err := checkList("patterns."+name, patterns); err != nil {
			return nil, err
		}
		parsed := make([]card.DecorationType, 0, len(patterns))
		for _, raw := range patterns {
			d, err := card.ParseDecorationType(raw)
			if err != nil {
				return nil, fmt.Errorf("patterns.%s: %w", name, err)
			}
			parsed = append(parsed, d)
		}
		p.Patterns[t] = parsed
	}

	for _, t := range card.AllTypes() {
		if len(p.Messages[t]) == 0 {
			p.Messages[t] = base.Messages[t]
			p.Fallbacks = append(p.Fallbacks, "messages."+string(t))
		}
		if len(p.Music[t]) == 0 {
			p.Music[t] = base.Music[t]
			p.Fallbacks = append(p.Fallbacks, "music."+string(t))
		}
		if len(p.Patterns[t]) == 0 {
			p.Patterns[t] = base.Patterns[t]
			p.Fallbacks = append(p.Fallbacks, "patterns."+string(t))
		}
	}
	for _, t := range card.AllThemes() {
		if _, ok := p.ColorSchemes[t]; !ok {
			p.ColorSchemes[t] = base.ColorSchemes[t]
			p.Fallbacks = append(p.Fallbacks, "color_schemes."+string(t))
		}
	}

	return p, nil
}

// checkList rejects an empty list and blank entries
func checkList(section string, items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("%s: list is empty", section)
	}
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("%s[%d]: entry is blank", section, i)
		}
	}
	return nil
}

// checkScheme requires all five colors as hex values
func checkScheme(name string, scheme card.ColorScheme) error {
	err := config.GetValidator().Struct(scheme)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("color_schemes.%s: %w", name, err)
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "required" {
		return fmt.Errorf("color_schemes.%s: %s is required", name, field)
	}
	return fmt.Errorf("color_schemes.%s: %s %q is not a hex color", name, field, fmt.Sprint(fe.Value()))
}

// ToFile converts the pack into its on-disk layout
func (p *Pack) ToFile() *File {
	f := &File{
		Pack: Header{
			ID:          p.ID,
			Name:        p.Name,
			Version:     p.Version,
			Description: p.Description,
		},
		Messages:     make(map[string][]string, len(p.Messages)),
		ColorSchemes: make(map[string]card.ColorScheme, len(p.ColorSchemes)),
		Music:        make(map[string][]string, len(p.Music)),
		Patterns:     make(map[string][]string, len(p.Patterns)),
	}
	for t, msgs := range p.Messages {
		f.Messages[string(t)] = msgs
	}
	for t, scheme := range p.ColorSchemes {
		f.ColorSchemes[string(t)] = scheme
	}
	for t, tracks := range p.Music {
		f.Music[string(t)] = tracks
	}
	for t, patterns := range p.Patterns {
		names := make([]string, len(patterns))
		for i, d := range patterns {
			names[i] = string(d)
		}
		f.Patterns[string(t)] = names
	}
	return f
}

// Encode writes the pack as TOML
func (p *Pack) Encode(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(p.ToFile()); err != nil {
		return fmt.Errorf("error encoding pack: %w", err)
	}
	return nil
}
