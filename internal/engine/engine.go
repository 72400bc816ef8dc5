package engine

import (
	"errors"
	"fmt"

	"excise/internal/buffer"
	"excise/internal/match"
	"excise/internal/span"
	"excise/pkg/rule"
)

// Application is one entry in the audit trail: a rule applied over an
// inclusive line span of the input.
type Application struct {
	RuleID string          `json:"rule_id"`
	Start  int             `json:"start_line"`
	End    int             `json:"end_line"`
	Action rule.ActionKind `json:"action"`
}

// PatchResult is the outcome of one engine run: the rewritten lines plus the
// ordered record of which rules fired at which spans. Applied spans are
// pairwise disjoint and strictly increasing in start index.
type PatchResult struct {
	Lines   []string
	Applied []Application
}

// Changed reports whether any rule fired.
func (r *PatchResult) Changed() bool {
	return len(r.Applied) > 0
}

// UnterminatedConstructError reports a matched construct whose end could not
// be resolved. The whole run is aborted and no output is written.
type UnterminatedConstructError struct {
	RuleID     string
	StartIndex int
}

func (e *UnterminatedConstructError) Error() string {
	return fmt.Sprintf("rule %q: construct starting at line %d is unterminated", e.RuleID, e.StartIndex+1)
}

// Run scans buf top to bottom in a single forward pass. For each line the
// rules are tried in table order; on the first match the span is resolved,
// the rewrite action applied over it, and scanning resumes past the span. On
// a miss the line is copied verbatim. Any resolution failure aborts the whole
// run.
func Run(buf *buffer.Buffer, rules []rule.Rule) (*PatchResult, error) {
	result := &PatchResult{}
	i := 0
	for i < buf.Len() {
		m, r := matchAny(rules, buf, i)
		if m == nil {
			result.Lines = append(result.Lines, buf.Line(i))
			i++
			continue
		}
		end, err := span.Resolve(r.Span, buf, i)
		if err != nil {
			if errors.Is(err, span.ErrUnterminated) {
				return nil, &UnterminatedConstructError{RuleID: r.ID, StartIndex: i}
			}
			return nil, fmt.Errorf("rule %q: %w", r.ID, err)
		}
		applyAction(result, buf, m, r, i, end)
		result.Applied = append(result.Applied, Application{
			RuleID: r.ID,
			Start:  i,
			End:    end,
			Action: r.Action.Kind,
		})
		i = end + 1
	}
	return result, nil
}

// matchAny returns the first rule (in table order) whose start predicate
// matches at index i.
func matchAny(rules []rule.Rule, buf *buffer.Buffer, i int) (*match.Match, *rule.Rule) {
	for idx := range rules {
		if m, ok := match.Line(&rules[idx], buf, i); ok {
			return m, &rules[idx]
		}
	}
	return nil, nil
}

// applyAction emits the rewritten form of the span [start, end] into result.
func applyAction(result *PatchResult, buf *buffer.Buffer, m *match.Match, r *rule.Rule, start, end int) {
	switch r.Action.Kind {
	case rule.Delete:
		// Nothing emitted.
	case rule.ReplaceLines:
		for _, tmpl := range r.Action.Template {
			result.Lines = append(result.Lines, m.Expand(tmpl))
		}
	case rule.ReplaceHeaderKeepBody:
		if len(r.Action.Template) > 0 {
			result.Lines = append(result.Lines, m.Expand(r.Action.Template[0]))
		}
		for j := start + 1; j <= end; j++ {
			result.Lines = append(result.Lines, buf.Line(j))
		}
	}
}
