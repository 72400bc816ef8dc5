package ruleset

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"

	"excise/pkg/rule"
)

// ruleFile is the on-disk TOML shape of a custom rule set.
type ruleFile struct {
	Rule []ruleConfig `toml:"rule"`
}

type ruleConfig struct {
	ID         string   `toml:"id"`
	Start      string   `toml:"start"`
	PrecededBy string   `toml:"preceded_by"`
	Span       string   `toml:"span"` // "line", "terminator", "balanced", "dedent"
	Terminator string   `toml:"terminator"`
	Open       string   `toml:"open"`
	Close      string   `toml:"close"`
	Depth      int      `toml:"initial_depth"`
	BaseIndent int      `toml:"base_indent"`
	Action     string   `toml:"action"` // "delete", "replace", "replace-header"
	Replace    []string `toml:"replace"`
}

// Load reads a rule set from a TOML file, compiles its patterns and validates
// the resulting table. Rules keep the file's order.
func Load(path string) ([]rule.Rule, error) {
	var file ruleFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("rule file %s: unknown key %q", path, undecoded[0].String())
	}
	if len(file.Rule) == 0 {
		return nil, fmt.Errorf("rule file %s: no rules defined", path)
	}

	rules := make([]rule.Rule, 0, len(file.Rule))
	for _, rc := range file.Rule {
		r, err := rc.compile()
		if err != nil {
			return nil, fmt.Errorf("rule file %s: %w", path, err)
		}
		rules = append(rules, r)
	}
	if err := Validate(rules); err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return rules, nil
}

func (rc ruleConfig) compile() (rule.Rule, error) {
	r := rule.Rule{ID: rc.ID}

	start, err := regexp.Compile(rc.Start)
	if err != nil {
		return r, fmt.Errorf("rule %q: invalid start pattern: %w", rc.ID, err)
	}
	r.Start = start

	if rc.PrecededBy != "" {
		preceded, err := regexp.Compile(rc.PrecededBy)
		if err != nil {
			return r, fmt.Errorf("rule %q: invalid preceded_by pattern: %w", rc.ID, err)
		}
		r.PrecededBy = preceded
	}

	switch rc.Span {
	case "", "line":
		r.Span = rule.SingleLine()
	case "terminator":
		if rc.Terminator == "" {
			return r, fmt.Errorf("rule %q: terminator span requires a terminator pattern", rc.ID)
		}
		term, err := regexp.Compile(rc.Terminator)
		if err != nil {
			return r, fmt.Errorf("rule %q: invalid terminator pattern: %w", rc.ID, err)
		}
		r.Span = rule.SpanStrategy{Kind: rule.FixedPattern, Terminator: term}
	case "balanced":
		opening, closing := rc.Open, rc.Close
		if opening == "" {
			opening = "{"
		}
		if closing == "" {
			closing = "}"
		}
		if len(opening) != 1 || len(closing) != 1 {
			return r, fmt.Errorf("rule %q: open and close must be single characters", rc.ID)
		}
		r.Span = rule.SpanStrategy{
			Kind:         rule.BalancedDelimiters,
			Open:         opening[0],
			Close:        closing[0],
			InitialDepth: rc.Depth,
		}
	case "dedent":
		r.Span = rule.Dedent(rc.BaseIndent)
	default:
		return r, fmt.Errorf("rule %q: unknown span %q", rc.ID, rc.Span)
	}

	switch rc.Action {
	case "", "delete":
		r.Action = rule.RewriteAction{Kind: rule.Delete}
	case "replace":
		r.Action = rule.RewriteAction{Kind: rule.ReplaceLines, Template: rc.Replace}
	case "replace-header":
		r.Action = rule.RewriteAction{Kind: rule.ReplaceHeaderKeepBody, Template: rc.Replace}
	default:
		return r, fmt.Errorf("rule %q: unknown action %q", rc.ID, rc.Action)
	}

	return r, nil
}
