package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateOnboarding:
		return m.viewOnboarding()
	case stateForm:
		return docStyle.Render(m.form.View())
	case stateConfirmDelete:
		return m.viewConfirmDelete()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("tinyhabits"),
		m.list.View(),
	))
}

func (m Model) viewOnboarding() string {
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Welcome to tinyhabits"),
		"",
		"Pick a few habits that take five minutes or less,",
		"complete them every day, and watch your streaks grow.",
		"",
		subtleStyle.Render("Press any key to get started."),
	))
}

func (m Model) viewConfirmDelete() string {
	name := m.deletingID
	if h, ok := m.store.Get(m.deletingID); ok {
		name = h.Name
	}
	return docStyle.Render(fmt.Sprintf("%s\n\n%s",
		dangerStyle.Render(fmt.Sprintf("Delete habit %q?", name)),
		subtleStyle.Render("y: delete · n: cancel")))
}
