package span

import (
	"errors"
	"fmt"
	"strings"

	"excise/internal/buffer"
	"excise/pkg/rule"
)

// ErrUnterminated is returned when a strategy exhausts the buffer before the
// construct's end is found. Callers wrap it with the rule id and start index.
var ErrUnterminated = errors.New("unterminated construct")

// Resolve computes the inclusive end line index of the construct starting at
// start, using the rule's span strategy. It fails with ErrUnterminated rather
// than silently truncating at end of buffer.
func Resolve(s rule.SpanStrategy, buf *buffer.Buffer, start int) (int, error) {
	switch s.Kind {
	case rule.FixedPattern:
		return resolveFixedPattern(s, buf, start)
	case rule.BalancedDelimiters:
		return resolveBalanced(s, buf, start)
	case rule.BlankOrDedent:
		return resolveDedent(s, buf, start), nil
	default:
		return 0, fmt.Errorf("unknown span strategy kind %d", s.Kind)
	}
}

// resolveFixedPattern scans forward, start line included, until a line
// matches the terminator.
func resolveFixedPattern(s rule.SpanStrategy, buf *buffer.Buffer, start int) (int, error) {
	for i := start; i < buf.Len(); i++ {
		if s.Terminator.MatchString(buf.Line(i)) {
			return i, nil
		}
	}
	return 0, ErrUnterminated
}

// resolveBalanced counts open/close delimiters per line, seeded at
// InitialDepth. The span ends on the line where the depth returns to zero
// after having gone positive, which may be the start line itself. Delimiter
// characters inside string or comment literals are counted like any other;
// rules must avoid lines where that misfires.
func resolveBalanced(s rule.SpanStrategy, buf *buffer.Buffer, start int) (int, error) {
	depth := s.InitialDepth
	wentPositive := depth > 0
	for i := start; i < buf.Len(); i++ {
		line := buf.Line(i)
		for j := 0; j < len(line); j++ {
			switch line[j] {
			case s.Open:
				depth++
				wentPositive = true
			case s.Close:
				depth--
			}
		}
		if wentPositive && depth <= 0 {
			return i, nil
		}
	}
	return 0, ErrUnterminated
}

// resolveDedent ends the span just before the first non-blank line indented
// at or below BaseIndent. End of buffer always terminates, so this strategy
// cannot fail.
func resolveDedent(s rule.SpanStrategy, buf *buffer.Buffer, start int) int {
	for i := start + 1; i < buf.Len(); i++ {
		line := buf.Line(i)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if leadingWhitespace(line) <= s.BaseIndent {
			return i - 1
		}
	}
	return buf.Len() - 1
}

// leadingWhitespace counts leading space and tab characters.
func leadingWhitespace(line string) int {
	n := 0
	for ; n < len(line); n++ {
		if line[n] != ' ' && line[n] != '\t' {
			break
		}
	}
	return n
}
