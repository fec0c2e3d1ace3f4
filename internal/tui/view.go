package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/greetcard/internal/render"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	title := titleStyle.Render(fmt.Sprintf("greetcard • %s • %s", m.current.Type.Label(), m.current.Theme.Label()))
	sections = append(sections, title)

	if m.screen == ScreenHistory {
		sections = append(sections, sectionStyle.Render("History"), m.historyView())
		sections = append(sections, footerStyle.Render(m.help.View(historyHelp{m.keys})))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	opts := render.Options{Width: m.width}
	if m.face == FaceCover {
		sections = append(sections, render.Cover(m.current, opts))
	} else {
		sections = append(sections, render.Inside(m.current, opts))
	}

	if line := m.statusLine(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, footerStyle.Render(m.help.View(cardHelp{m.keys})))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusLine() string {
	switch {
	case m.aiPending:
		return m.spinner.View() + " " + statusStyle.Render(m.status)
	case m.errMsg != "":
		return errorStyle.Render("✗ " + m.errMsg)
	case m.status != "":
		return statusStyle.Render(m.status)
	default:
		return ""
	}
}

func (m Model) historyView() string {
	entries := m.gen.History()
	if len(entries) == 0 {
		return mutedStyle.Render("  no cards yet")
	}

	lines := make([]string, 0, len(entries))
	for i, c := range entries {
		preview := []rune(strings.ReplaceAll(c.Message, "\n", " "))
		if len(preview) > 24 {
			preview = append(preview[:24], '…')
		}
		line := fmt.Sprintf("%2d. %s · %s · %s · %s", i+1, c.CreatedAt.Format("15:04:05"), c.Type.Label(), c.Theme.Label(), string(preview))
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("› "+line))
		} else {
			lines = append(lines, entryStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}
