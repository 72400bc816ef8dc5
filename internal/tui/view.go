package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI model's current screen as a string.
func (m model) View() string {
	switch m.state {
	case ViewQuitting:
		return quittingView()
	case ViewApplied:
		return appliedView(m)
	case ViewError:
		return errorView(m)
	default:
		return listView(m)
	}
}

func quittingView() string {
	return "No changes written.\n"
}

func listView(m model) string {
	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(1).
		Render(m.list.View())

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
		Render("Enter: apply patch    q: quit without writing")

	return lipgloss.JoinVertical(lipgloss.Left, frame, help)
}

func appliedView(m model) string {
	successStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	header := successStyle.Render(fmt.Sprintf("✔ %s patched", m.file))

	return lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.DoubleBorder()).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.applied.View(), "", "Press any key to exit."),
	)
}

func errorView(m model) string {
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("%s\n\nPress any key to exit.", errStyle.Render("Error: "+m.err.Error())),
	)
}
