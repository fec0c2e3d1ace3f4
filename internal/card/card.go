package card

import (
	"fmt"
	"strings"
	"time"
)

// Type is the occasion a card is made for
type Type string

const (
	Birthday        Type = "birthday"
	Wedding         Type = "wedding"
	Congratulations Type = "congratulations"
	ThankYou        Type = "thank_you"
	NewYear         Type = "new_year"
	Valentine       Type = "valentine"
	Christmas       Type = "christmas"
	Custom          Type = "custom"
)

// Theme is a named visual preset
type Theme string

const (
	Elegant Theme = "elegant"
	Cute    Theme = "cute"
	Modern  Theme = "modern"
	Vintage Theme = "vintage"
	Nature  Theme = "nature"
)

// DecorationType is the ornament drawn by a single decoration
type DecorationType string

const (
	Flowers    DecorationType = "flowers"
	Stars      DecorationType = "stars"
	Hearts     DecorationType = "hearts"
	Balloons   DecorationType = "balloons"
	Snowflakes DecorationType = "snowflakes"
	Leaves     DecorationType = "leaves"
	Confetti   DecorationType = "confetti"
	Ribbon     DecorationType = "ribbon"
)

var (
	allTypes       = []Type{Birthday, Wedding, Congratulations, ThankYou, NewYear, Valentine, Christmas, Custom}
	allThemes      = []Theme{Elegant, Cute, Modern, Vintage, Nature}
	allDecorations = []DecorationType{Flowers, Stars, Hearts, Balloons, Snowflakes, Leaves, Confetti, Ribbon}
)

// AllTypes returns every card type in declaration order
func AllTypes() []Type {
	return append([]Type(nil), allTypes...)
}

// AllThemes returns every theme in declaration order
func AllThemes() []Theme {
	return append([]Theme(nil), allThemes...)
}

// AllDecorationTypes returns every decoration type in declaration order
func AllDecorationTypes() []DecorationType {
	return append([]DecorationType(nil), allDecorations...)
}

// Valid reports whether t is one of the known card types
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	for _, known := range allThemes {
		if t == known {
			return true
		}
	}
	return false
}

// Valid reports whether d is one of the known decoration types
func (d DecorationType) Valid() bool {
	for _, known := range allDecorations {
		if d == known {
			return true
		}
	}
	return false
}

// ParseType accepts the canonical name as well as dashed spellings (thank-you)
func ParseType(s string) (Type, error) {
	t := Type(normalize(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown card type: %s", s)
	}
	return t, nil
}

// ParseTheme parses a theme name case-insensitively
func ParseTheme(s string) (Theme, error) {
	t := Theme(normalize(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme: %s", s)
	}
	return t, nil
}

// ParseDecorationType parses a decoration name case-insensitively
func ParseDecorationType(s string) (DecorationType, error) {
	d := DecorationType(normalize(s))
	if !d.Valid() {
		return "", fmt.Errorf("unknown decoration type: %s", s)
	}
	return d, nil
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// ColorScheme holds the five colors of a theme as hex strings
type ColorScheme struct {
	Primary    string `json:"primary" yaml:"primary" toml:"primary" validate:"required,hexcolor"`
	Secondary  string `json:"secondary" yaml:"secondary" toml:"secondary" validate:"required,hexcolor"`
	Accent     string `json:"accent" yaml:"accent" toml:"accent" validate:"required,hexcolor"`
	Text       string `json:"text" yaml:"text" toml:"text" validate:"required,hexcolor"`
	Background string `json:"background" yaml:"background" toml:"background" validate:"required,hexcolor"`
}

// Position is a percentage coordinate inside the drawable area, each axis in [0,100]
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Decoration is one placed ornament
type Decoration struct {
	Type     DecorationType `json:"type" yaml:"type"`
	Position Position       `json:"position" yaml:"position"`
	Size     float64        `json:"size" yaml:"size"`
	Rotation float64        `json:"rotation" yaml:"rotation"`
	Opacity  float64        `json:"opacity" yaml:"opacity"`
}

// Card is a generated greeting card. Cards are values: every change made by
// the generator yields a new Card with a new ID.
type Card struct {
	ID          string       `json:"id" yaml:"id"`
	Type        Type         `json:"type" yaml:"type"`
	Theme       Theme        `json:"theme" yaml:"theme"`
	Message     string       `json:"message" yaml:"message"`
	Recipient   string       `json:"recipient,omitempty" yaml:"recipient,omitempty"`
	Sender      string       `json:"sender,omitempty" yaml:"sender,omitempty"`
	ColorScheme ColorScheme  `json:"colorScheme" yaml:"colorScheme"`
	Decorations []Decoration `json:"decorations" yaml:"decorations"`
	MusicURL    string       `json:"musicUrl" yaml:"musicUrl"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
}

// Clone returns a copy that shares no slices with c
func (c Card) Clone() Card {
	out := c
	if c.Decorations != nil {
		out.Decorations = append([]Decoration(nil), c.Decorations...)
	}
	return out
}

var typeLabels = map[Type]string{
	Birthday:        "生日贺卡",
	Wedding:         "新婚贺卡",
	Congratulations: "祝贺贺卡",
	ThankYou:        "感谢贺卡",
	NewYear:         "新年贺卡",
	Valentine:       "情人节贺卡",
	Christmas:       "圣诞贺卡",
	Custom:          "定制贺卡",
}

var themeLabels = map[Theme]string{
	Elegant: "优雅",
	Cute:    "可爱",
	Modern:  "现代",
	Vintage: "复古",
	Nature:  "自然",
}

// Label returns the display name of the card type
func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Label returns the display name of the theme
func (t Theme) Label() string {
	if label, ok := themeLabels[t]; ok {
		return label
	}
	return string(t)
}
