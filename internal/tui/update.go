package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/greetcard/internal/ai"
	"github.com/arcanaland/greetcard/internal/card"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.aiPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case aiMessageMsg:
		return m.handleAIMessage(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == ScreenHistory {
			return m.handleHistoryKeys(msg)
		}
		return m.handleCardKeys(msg)
	}

	return m, nil
}

func (m Model) handleCardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		return m.newCard(m.current.Type, m.current.Theme)

	case key.Matches(msg, m.keys.Type):
		return m.newCard(nextType(m.current.Type), m.current.Theme)

	case key.Matches(msg, m.keys.Regenerate):
		next, err := m.gen.RegenerateCardMessage(m.current)
		if err != nil {
			m.setError(err, "could not regenerate message")
			return m, nil
		}
		m.replace(next)
		m.setStatus("new message")
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		theme := nextTheme(m.current.Theme)
		next, err := m.gen.ChangeCardTheme(m.current, theme)
		if err != nil {
			m.setError(err, "could not change theme")
			return m, nil
		}
		m.current = next
		m.setStatus("theme: %s", theme.Label())
		return m, nil

	case key.Matches(msg, m.keys.Flip):
		if m.face == FaceCover {
			m.face = FaceInside
		} else {
			m.face = FaceCover
		}
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.screen = ScreenHistory
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.gen.ClearHistory()
		m.setStatus("history cleared")
		return m, nil

	case key.Matches(msg, m.keys.AI):
		return m.requestAI()
	}

	return m, nil
}

func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.gen.History()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenCard
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Restore):
		if m.cursor >= len(entries) {
			return m, nil
		}
		restored, ok := m.gen.RestoreFromHistory(entries[m.cursor].ID)
		if !ok {
			m.setError(nil, "card is no longer in history")
			return m, nil
		}
		m.replace(restored)
		m.face = FaceCover
		m.screen = ScreenCard
		m.setStatus("restored %s", restored.ID)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.gen.ClearHistory()
		m.cursor = 0
		m.screen = ScreenCard
		m.setStatus("history cleared")
		return m, nil
	}

	return m, nil
}

func (m Model) newCard(t card.Type, theme card.Theme) (tea.Model, tea.Cmd) {
	next, err := m.gen.GenerateCard(t, theme, m.recipient, m.sender)
	if err != nil {
		m.setError(err, "could not generate card")
		return m, nil
	}
	m.replace(next)
	m.face = FaceCover
	m.setStatus("new %s", t.Label())
	return m, nil
}

func (m Model) requestAI() (tea.Model, tea.Cmd) {
	if m.provider == nil || !m.provider.Configured() {
		m.setError(ai.ErrUnconfigured, "no AI key, run `greetcard key set`")
		return m, nil
	}

	m.aiSeq++
	m.aiPending = true
	m.setStatus("asking %s", m.provider.Name())
	m.log.WithFields(map[string]any{"seq": m.aiSeq, "provider": m.provider.Name()}).Debug("requesting AI message")

	return m, tea.Batch(
		m.spinner.Tick,
		requestAIMessage(m.ctx, m.provider, m.current.Type, m.aiSeq, m.timeout),
	)
}

func (m Model) handleAIMessage(msg aiMessageMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.aiSeq || !m.aiPending {
		m.log.With("seq", msg.seq).Debug("dropping stale AI reply")
		return m, nil
	}
	m.aiPending = false

	if msg.err != nil {
		var perr *ai.ProviderError
		if errors.As(msg.err, &perr) && perr.StatusCode > 0 {
			m.setError(nil, "%s rejected the request (status %d)", perr.Provider, perr.StatusCode)
		} else {
			m.setError(msg.err, "AI request failed")
		}
		m.log.Error(msg.err, "AI message failed")
		return m, nil
	}

	m.current = m.gen.WithMessage(m.current, msg.message.Text())
	m.face = FaceInside
	m.setStatus("AI message: %s · %s", msg.message.Title, msg.message.Signature)
	return m, nil
}

func nextTheme(current card.Theme) card.Theme {
	themes := card.AllThemes()
	for i, t := range themes {
		if t == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func nextType(current card.Type) card.Type {
	types := card.AllTypes()
	for i, t := range types {
		if t == current {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}
