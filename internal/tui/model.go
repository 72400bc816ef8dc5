package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"

	"excise/internal/core"
	"excise/internal/engine"
	"excise/pkg/rule"
)

// ConstructItem represents one pending construct for the list.
type ConstructItem struct {
	app     engine.Application
	preview string // first line of the span, truncated for display
}

func (c ConstructItem) Title() string {
	return fmt.Sprintf("%s  lines %d-%d", c.app.RuleID, c.app.Start+1, c.app.End+1)
}

func (c ConstructItem) Description() string { return c.preview }
func (c ConstructItem) FilterValue() string { return c.app.RuleID }

// viewState selects which screen the TUI renders.
type viewState int

const (
	ViewList viewState = iota
	ViewApplied
	ViewError
	ViewQuitting
)

// ApplyFunc performs the actual patch when the user confirms.
type ApplyFunc func() (*core.Outcome, error)

// model is the Bubbletea model for the preview TUI.
type model struct {
	list    list.Model
	file    string
	pending *core.Outcome // dry-run outcome backing the list
	apply   ApplyFunc
	applied table.Model
	err     error
	state   viewState
	width   int // Track terminal width for dynamic resizing
	height  int // Track terminal height for dynamic resizing
}

// initialModel creates the initial TUI model from a dry-run outcome.
func initialModel(file string, pending *core.Outcome, firstLines []string, apply ApplyFunc) model {
	items := make([]list.Item, len(pending.Result.Applied))
	for i, app := range pending.Result.Applied {
		items[i] = ConstructItem{
			app:     app,
			preview: runewidth.Truncate(firstLines[i], 72, "…"),
		}
	}
	defaultWidth, defaultHeight := 80, 20
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, defaultWidth, defaultHeight)
	l.Title = file

	return model{
		list:    l,
		file:    file,
		pending: pending,
		apply:   apply,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// appliedTable builds the summary table shown after the patch is written.
func appliedTable(applied []engine.Application, width int) table.Model {
	columns := []table.Column{
		{Title: "Rule", Width: width / 2},
		{Title: "Lines", Width: width / 4},
		{Title: "Action", Width: width / 4},
	}
	rows := make([]table.Row, len(applied))
	for i, a := range applied {
		rows[i] = table.Row{a.RuleID, fmt.Sprintf("%d-%d", a.Start+1, a.End+1), actionName(a.Action)}
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(min(len(rows)+1, 12)),
	)
}

func actionName(k rule.ActionKind) string {
	switch k {
	case rule.Delete:
		return "delete"
	case rule.ReplaceLines:
		return "replace"
	case rule.ReplaceHeaderKeepBody:
		return "replace-header"
	}
	return "unknown"
}

// min returns the minimum of two ints.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
