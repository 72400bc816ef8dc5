package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"excise/internal/core"
	"excise/internal/engine"
	"excise/pkg/rule"
)

func pendingOutcome() *core.Outcome {
	return &core.Outcome{
		File: "client.rs",
		Result: &engine.PatchResult{
			Lines: []string{"kept"},
			Applied: []engine.Application{
				{RuleID: "before-request-call", Start: 2, End: 3, Action: rule.Delete},
				{RuleID: "handle-api-error", Start: 7, End: 7, Action: rule.ReplaceLines},
			},
		},
	}
}

func testModel(apply ApplyFunc) model {
	return initialModel("client.rs", pendingOutcome(), []string{"self.call_before_request(", "Err(e) => ..."}, apply)
}

func TestUpdateQuitWithoutApplying(t *testing.T) {
	applied := false
	m := testModel(func() (*core.Outcome, error) {
		applied = true
		return nil, nil
	})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	got := updated.(model)
	if got.state != ViewQuitting {
		t.Errorf("state = %v, want ViewQuitting", got.state)
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
	if applied {
		t.Error("quit must not apply the patch")
	}
}

func TestUpdateEnterApplies(t *testing.T) {
	applied := false
	m := testModel(func() (*core.Outcome, error) {
		applied = true
		return pendingOutcome(), nil
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(model)
	if !applied {
		t.Fatal("enter did not apply the patch")
	}
	if got.state != ViewApplied {
		t.Errorf("state = %v, want ViewApplied", got.state)
	}

	view := got.View()
	if !strings.Contains(view, "client.rs patched") {
		t.Errorf("applied view %q missing success header", view)
	}
	if !strings.Contains(view, "before-request-call") {
		t.Errorf("applied view %q missing rule id", view)
	}
}

func TestUpdateApplyFailureShowsError(t *testing.T) {
	m := testModel(func() (*core.Outcome, error) {
		return nil, errors.New("unterminated construct")
	})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(model)
	if got.state != ViewError {
		t.Errorf("state = %v, want ViewError", got.state)
	}
	if !strings.Contains(got.View(), "unterminated construct") {
		t.Errorf("error view %q missing error text", got.View())
	}
}

func TestListViewShowsPendingConstructs(t *testing.T) {
	m := testModel(nil)
	view := m.View()
	if !strings.Contains(view, "before-request-call") {
		t.Errorf("list view missing rule id:\n%s", view)
	}
	if !strings.Contains(view, "lines 3-4") {
		t.Errorf("list view missing 1-based span:\n%s", view)
	}
}
