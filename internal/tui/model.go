package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/greetcard/internal/ai"
	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/generator"
	"github.com/arcanaland/greetcard/internal/logger"
)

// DefaultAITimeout bounds a single AI request made from the session
const DefaultAITimeout = 45 * time.Second

// Face is the side of the card on screen
type Face int

const (
	FaceCover Face = iota
	FaceInside
)

// Screen selects between the card and the history list
type Screen int

const (
	ScreenCard Screen = iota
	ScreenHistory
)

// aiMessageMsg carries an AI reply tagged with the sequence number of its request
type aiMessageMsg struct {
	seq     int
	message ai.Message
	err     error
}

// Options configures a session
type Options struct {
	Generator *generator.Generator
	// Provider may be nil, in which case AI requests report an error
	Provider  ai.Provider
	Type      card.Type
	Theme     card.Theme
	Recipient string
	Sender    string
	Context   context.Context
	Timeout   time.Duration
	Logger    *logger.Logger
}

// Model is the bubbletea state of an interactive card session. The session
// owns one generator, and with it one history store, for its lifetime.
type Model struct {
	gen       *generator.Generator
	provider  ai.Provider
	ctx       context.Context
	timeout   time.Duration
	log       *logger.Logger
	recipient string
	sender    string

	current card.Card
	face    Face
	screen  Screen
	cursor  int

	// aiSeq identifies the latest AI request; replies with another number are stale
	aiSeq     int
	aiPending bool

	status   string
	errMsg   string
	width    int
	spinner  spinner.Model
	keys     keyMap
	help     help.Model
	quitting bool
}

// NewModel creates a session and generates its first card
func NewModel(opts Options) (Model, error) {
	if opts.Generator == nil {
		opts.Generator = generator.New(nil)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultAITimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	first, err := opts.Generator.GenerateCard(opts.Type, opts.Theme, opts.Recipient, opts.Sender)
	if err != nil {
		return Model{}, fmt.Errorf("error generating first card: %w", err)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		gen:       opts.Generator,
		provider:  opts.Provider,
		ctx:       opts.Context,
		timeout:   opts.Timeout,
		log:       opts.Logger.With("component", "session"),
		recipient: opts.Recipient,
		sender:    opts.Sender,
		current:   first,
		spinner:   s,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}, nil
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Current returns the card on screen
func (m Model) Current() card.Card {
	return m.current
}

// Face returns which side of the card is shown
func (m Model) Face() Face {
	return m.face
}

// Screen returns the active screen
func (m Model) Screen() Screen {
	return m.screen
}

// Pending reports whether an AI request is in flight
func (m Model) Pending() bool {
	return m.aiPending
}

// Status returns the last status line and error line
func (m Model) Status() (string, string) {
	return m.status, m.errMsg
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.errMsg = ""
}

func (m *Model) setError(err error, format string, args ...any) {
	m.status = ""
	m.errMsg = fmt.Sprintf(format, args...)
	if err != nil {
		m.errMsg += ": " + err.Error()
	}
}

// replace swaps in a card that no pending AI reply was asked for
func (m *Model) replace(c card.Card) {
	m.current = c
	if m.aiPending {
		m.aiSeq++
		m.aiPending = false
	}
}

// requestAIMessage runs one provider call off the update loop
func requestAIMessage(ctx context.Context, p ai.Provider, t card.Type, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		message, err := p.GenerateCardMessage(ctx, t, "")
		return aiMessageMsg{seq: seq, message: message, err: err}
	}
}
