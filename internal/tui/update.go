package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and key presses.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, maxInt(msg.Height-6, 5))
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case ViewList:
			return m.updateList(msg)
		case ViewApplied, ViewError:
			// Any key leaves the terminal screen.
			m.state = ViewQuitting
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.state = ViewQuitting
		return m, tea.Quit
	case "enter":
		outcome, err := m.apply()
		if err != nil {
			m.err = err
			m.state = ViewError
			return m, nil
		}
		m.applied = appliedTable(outcome.Result.Applied, m.width-6)
		m.state = ViewApplied
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// maxInt returns the maximum of two ints.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
