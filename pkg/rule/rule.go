package rule

import (
	"fmt"
	"regexp"
)

// StrategyKind selects how the end of a matched construct is found.
type StrategyKind int

const (
	// FixedPattern scans forward (start line included) until a line matches
	// the Terminator regexp.
	FixedPattern StrategyKind = iota
	// BalancedDelimiters counts Open/Close characters per line and ends the
	// span on the line where the depth returns to zero after having gone
	// positive. Delimiters inside string or comment literals are NOT
	// recognized as such; rules must avoid constructs where that matters.
	BalancedDelimiters
	// BlankOrDedent ends the span just before the first non-blank line whose
	// indentation is <= BaseIndent, or at the end of the buffer.
	BlankOrDedent
)

// SpanStrategy describes how to resolve the inclusive end line of a construct
// from its start line.
type SpanStrategy struct {
	Kind         StrategyKind
	Terminator   *regexp.Regexp // FixedPattern
	Open, Close  byte           // BalancedDelimiters
	InitialDepth int            // BalancedDelimiters
	BaseIndent   int            // BlankOrDedent
}

// SingleLine returns a strategy whose span is exactly the start line.
func SingleLine() SpanStrategy {
	// An empty terminator pattern matches every line, so the scan stops on
	// the start line itself.
	return SpanStrategy{Kind: FixedPattern, Terminator: regexp.MustCompile(``)}
}

// Terminated returns a FixedPattern strategy ending at the first line that
// matches pattern.
func Terminated(pattern string) SpanStrategy {
	return SpanStrategy{Kind: FixedPattern, Terminator: regexp.MustCompile(pattern)}
}

// Braces returns a BalancedDelimiters strategy over '{' and '}' seeded at
// depth.
func Braces(depth int) SpanStrategy {
	return SpanStrategy{Kind: BalancedDelimiters, Open: '{', Close: '}', InitialDepth: depth}
}

// Dedent returns a BlankOrDedent strategy with the given base indentation.
func Dedent(baseIndent int) SpanStrategy {
	return SpanStrategy{Kind: BlankOrDedent, BaseIndent: baseIndent}
}

// ActionKind selects what happens to the lines of a resolved span.
type ActionKind int

const (
	// Delete removes every line of the span.
	Delete ActionKind = iota
	// ReplaceLines removes the span and emits the Template lines instead.
	// Template lines may reference capture groups of the start predicate
	// using regexp expansion syntax ($1, ${name}).
	ReplaceLines
	// ReplaceHeaderKeepBody rewrites only the first line of the span (with
	// Template[0]) and keeps the interior lines unchanged.
	ReplaceHeaderKeepBody
)

// RewriteAction describes the rewrite applied over a resolved span.
type RewriteAction struct {
	Kind     ActionKind
	Template []string
}

// Rule ties a start predicate to a span strategy and a rewrite action.
// Rules are tried in table order per line; the first match wins.
type Rule struct {
	// ID identifies the rule in summaries, reports and errors.
	ID string
	// Start is the predicate tested against the current line.
	Start *regexp.Regexp
	// PrecededBy, when non-nil, additionally requires the previous line to
	// match. This is the only lookback the engine performs; predicates are
	// otherwise a pure function of the current line.
	PrecededBy *regexp.Regexp
	Span       SpanStrategy
	Action     RewriteAction
}

// String returns a one-line description of the rule for summaries.
func (r *Rule) String() string {
	var action string
	switch r.Action.Kind {
	case Delete:
		action = "delete"
	case ReplaceLines:
		action = "replace"
	case ReplaceHeaderKeepBody:
		action = "replace-header"
	}
	return fmt.Sprintf("%s (%s)", r.ID, action)
}
