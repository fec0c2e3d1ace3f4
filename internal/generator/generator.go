package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/history"
	"github.com/arcanaland/greetcard/internal/pack"
)

var (
	// ErrUnknownType is returned for card types outside the enumeration
	ErrUnknownType = errors.New("unknown card type")
	// ErrUnknownTheme is returned for themes outside the enumeration
	ErrUnknownTheme = errors.New("unknown theme")
)

// DefaultDecorationCount is the number of decorations placed on a new card
const DefaultDecorationCount = 20

// Rand is the random source the generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Generator builds cards from a content pack and records them in a history store
type Generator struct {
	pack            *pack.Pack
	history         *history.Store
	rng             Rand
	now             func() time.Time
	decorationCount int
}

// Option customizes a Generator
type Option func(*Generator)

// WithRand sets the random source
func WithRand(r Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed uses a deterministic PCG source seeded with seed
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithClock sets the function used for creation timestamps and ids
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithHistory shares an existing history store
func WithHistory(s *history.Store) Option {
	return func(g *Generator) { g.history = s }
}

// WithDecorationCount sets how many decorations generated cards carry
func WithDecorationCount(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.decorationCount = n
		}
	}
}

// New creates a Generator. A nil pack selects the built-in pack.
func New(p *pack.Pack, opts ...Option) *Generator {
	if p == nil {
		p = pack.Default()
	}
	g := &Generator{
		pack:            p,
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:             time.Now,
		decorationCount: DefaultDecorationCount,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.history == nil {
		g.history = history.NewStore(history.DefaultCapacity)
	}
	return g
}

// Pack returns the content pack in use
func (g *Generator) Pack() *pack.Pack {
	return g.pack
}

// GenerateMessage picks one template of the card type uniformly at random
func (g *Generator) GenerateMessage(t card.Type) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	msgs, err := g.pack.MessagesFor(t)
	if err != nil {
		return "", err
	}
	return msgs[g.rng.IntN(len(msgs))], nil
}

// SelectMusic picks one track of the card type uniformly at random
func (g *Generator) SelectMusic(t card.Type) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	tracks, err := g.pack.MusicFor(t)
	if err != nil {
		return "", err
	}
	return tracks[g.rng.IntN(len(tracks))], nil
}

// GenerateCard composes a new card and puts it at the head of the history
func (g *Generator) GenerateCard(t card.Type, theme card.Theme, recipient, sender string) (card.Card, error) {
	if !theme.Valid() {
		return card.Card{}, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}
	message, err := g.GenerateStyledMessage(t, recipient, sender)
	if err != nil {
		return card.Card{}, err
	}
	scheme, err := g.pack.ColorScheme(theme)
	if err != nil {
		return card.Card{}, err
	}
	decorations, err := g.GenerateDecorations(t, g.decorationCount)
	if err != nil {
		return card.Card{}, err
	}
	music, err := g.SelectMusic(t)
	if err != nil {
		return card.Card{}, err
	}

	now := g.now()
	c := card.Card{
		ID:          g.newID(now),
		Type:        t,
		Theme:       theme,
		Message:     message,
		Recipient:   recipient,
		Sender:      sender,
		ColorScheme: scheme,
		Decorations: decorations,
		MusicURL:    music,
		CreatedAt:   now,
	}

	g.history.Add(c)
	return c.Clone(), nil
}

// RegenerateCardMessage returns a new card with a fresh message and layout.
// Type, theme, names, colors and music are carried over.
func (g *Generator) RegenerateCardMessage(prev card.Card) (card.Card, error) {
	message, err := g.GenerateStyledMessage(prev.Type, prev.Recipient, prev.Sender)
	if err != nil {
		return card.Card{}, err
	}
	decorations, err := g.GenerateDecorations(prev.Type, g.decorationCount)
	if err != nil {
		return card.Card{}, err
	}

	next := prev.Clone()
	next.Message = message
	next.Decorations = decorations
	return g.derive(prev.ID, next), nil
}

// ChangeCardTheme returns a new card using theme and its color scheme, with a fresh layout
func (g *Generator) ChangeCardTheme(prev card.Card, theme card.Theme) (card.Card, error) {
	if !theme.Valid() {
		return card.Card{}, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}
	scheme, err := g.pack.ColorScheme(theme)
	if err != nil {
		return card.Card{}, err
	}
	decorations, err := g.GenerateDecorations(prev.Type, g.decorationCount)
	if err != nil {
		return card.Card{}, err
	}

	next := prev.Clone()
	next.Theme = theme
	next.ColorScheme = scheme
	next.Decorations = decorations
	return g.derive(prev.ID, next), nil
}

// WithMessage returns a new card carrying message, for text produced outside
// the generator such as an AI provider. Everything else is carried over.
func (g *Generator) WithMessage(prev card.Card, message string) card.Card {
	next := prev.Clone()
	next.Message = message
	return g.derive(prev.ID, next)
}

// derive stamps next with a new id and time and swaps it in for prevID
func (g *Generator) derive(prevID string, next card.Card) card.Card {
	now := g.now()
	next.ID = g.newID(now)
	next.CreatedAt = now
	g.history.Replace(prevID, next)
	return next
}

// History returns the session history, newest first
func (g *Generator) History() []card.Card {
	return g.history.List()
}

// ClearHistory empties the session history
func (g *Generator) ClearHistory() {
	g.history.Clear()
}

// RestoreFromHistory returns a copy of the card with the given id
func (g *Generator) RestoreFromHistory(id string) (card.Card, bool) {
	return g.history.Get(id)
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID is the base-36 millisecond timestamp followed by a random base-36 suffix
func (g *Generator) newID(now time.Time) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	for i := 0; i < 10; i++ {
		b.WriteByte(idAlphabet[g.rng.IntN(len(idAlphabet))])
	}
	return b.String()
}
