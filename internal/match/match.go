package match

import (
	"regexp"

	"excise/internal/buffer"
	"excise/pkg/rule"
)

// Match records a successful start-predicate test: which line matched and the
// submatch positions needed to expand capture references in templates.
type Match struct {
	Line string
	loc  []int
	re   *regexp.Regexp
}

// Expand substitutes capture references ($1, ${name}) in template with the
// groups captured from the matched line.
func (m *Match) Expand(template string) string {
	return string(m.re.ExpandString(nil, template, m.Line, m.loc))
}

// Line tests whether r's start predicate matches buf at index i. The test is
// a pure function of the current line plus, when the rule asks for it, the
// previous line; it never mutates the buffer and never looks further back.
func Line(r *rule.Rule, buf *buffer.Buffer, i int) (*Match, bool) {
	line := buf.Line(i)
	loc := r.Start.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, false
	}
	if r.PrecededBy != nil {
		if i == 0 || !r.PrecededBy.MatchString(buf.Line(i-1)) {
			return nil, false
		}
	}
	return &Match{Line: line, loc: loc, re: r.Start}, true
}
