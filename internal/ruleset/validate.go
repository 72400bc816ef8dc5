package ruleset

import (
	"fmt"
	"strings"

	"excise/internal/buffer"
	"excise/internal/match"
	"excise/pkg/rule"
)

// AmbiguousMatchError reports lines of an input claimed by more than one
// rule's start predicate. First-match-wins makes this deterministic at run
// time, but overlapping predicates are a rule-set authoring defect and are
// reported before any file is touched when strict checking is on.
type AmbiguousMatchError struct {
	Index   int
	RuleIDs []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("line %d is claimed by multiple rules: %s", e.Index+1, strings.Join(e.RuleIDs, ", "))
}

// Validate checks the rule table for authoring defects: empty or duplicate
// ids, missing predicates, and actions whose template requirements are not
// met.
func Validate(rules []rule.Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i := range rules {
		r := &rules[i]
		if r.ID == "" {
			return fmt.Errorf("rule %d: empty id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("rule %q: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Start == nil {
			return fmt.Errorf("rule %q: missing start predicate", r.ID)
		}
		switch r.Action.Kind {
		case rule.Delete:
			if len(r.Action.Template) > 0 {
				return fmt.Errorf("rule %q: delete action does not take a template", r.ID)
			}
		case rule.ReplaceLines, rule.ReplaceHeaderKeepBody:
			if len(r.Action.Template) == 0 {
				return fmt.Errorf("rule %q: replace action requires a template", r.ID)
			}
		default:
			return fmt.Errorf("rule %q: unknown action kind %d", r.ID, r.Action.Kind)
		}
		if r.Span.Kind == rule.FixedPattern && r.Span.Terminator == nil {
			return fmt.Errorf("rule %q: fixed-pattern span requires a terminator", r.ID)
		}
		if r.Span.Kind == rule.BalancedDelimiters && (r.Span.Open == 0 || r.Span.Close == 0) {
			return fmt.Errorf("rule %q: balanced span requires open and close delimiters", r.ID)
		}
	}
	return nil
}

// Check tests every line of buf against every rule's start predicate and
// reports the first line claimed by more than one rule.
func Check(rules []rule.Rule, buf *buffer.Buffer) error {
	for i := 0; i < buf.Len(); i++ {
		var claimed []string
		for idx := range rules {
			if _, ok := match.Line(&rules[idx], buf, i); ok {
				claimed = append(claimed, rules[idx].ID)
			}
		}
		if len(claimed) > 1 {
			return &AmbiguousMatchError{Index: i, RuleIDs: claimed}
		}
	}
	return nil
}
