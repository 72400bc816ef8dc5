package ruleset

import (
	"regexp"

	"excise/pkg/rule"
)

// Interceptor returns the built-in rule set that strips an interceptor
// facility from a client source file: imports, the chain field and its
// initialization, helper macro and methods, and the per-request call sites.
// Every predicate anchors on a token its own rewrite removes, so applying
// the set to already-patched output matches zero rules.
func Interceptor() []rule.Rule {
	return []rule.Rule{
		{
			ID:     "interceptor-import",
			Start:  regexp.MustCompile(`^use crate::interceptor::\{`),
			Span:   rule.Terminated(`\};\s*$`),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "lint-allow",
			Start:  regexp.MustCompile(`^// Allow this lint`),
			Span:   rule.Terminated(`^#!\[allow\(clippy::too_many_arguments\)\]\s*$`),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "rwlock-import",
			Start:  regexp.MustCompile(`^use tokio::sync::RwLock;\s*$`),
			Span:   rule.SingleLine(),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "helper-macro",
			Start:  regexp.MustCompile(`^// Helper macro to generate interceptor helper methods`),
			Span:   rule.Braces(0),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "macro-invocation",
			Start:  regexp.MustCompile(`^\s*impl_interceptor_helpers!\(`),
			Span:   rule.Terminated(`\);\s*$`),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "chain-field",
			Start:  regexp.MustCompile(`^\s*interceptors: Arc<RwLock<InterceptorChain>>,\s*$`),
			Span:   rule.SingleLine(),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:    "debug-comment",
			Start: regexp.MustCompile(`^// Custom Debug implementation since InterceptorChain doesn't implement Debug\s*$`),
			Span:  rule.SingleLine(),
			Action: rule.RewriteAction{
				Kind:     rule.ReplaceLines,
				Template: []string{"// Custom Debug implementation"},
			},
		},
		{
			ID:     "debug-field",
			Start:  regexp.MustCompile(`^\s*\.field\("interceptors", &"<InterceptorChain>"\)\s*$`),
			Span:   rule.SingleLine(),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "chain-init",
			Start:  regexp.MustCompile(`^\s*interceptors: Arc::new\(RwLock::new\(InterceptorChain::new\(\)\)\),\s*$`),
			Span:   rule.SingleLine(),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "with-interceptor-method",
			Start:  regexp.MustCompile(`^\s*/// Add an interceptor to the client\.`),
			Span:   rule.Braces(0),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "chain-accessor",
			Start:  regexp.MustCompile(`^\s*/// Get a reference to the interceptor chain\.`),
			Span:   rule.Braces(0),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "helper-impl-block",
			Start:  regexp.MustCompile(`^// Interceptor helper methods\s*$`),
			Span:   rule.Braces(0),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "metadata-decl",
			Start:  regexp.MustCompile(`^\s*let (mut )?metadata = HashMap::new\(\);\s*$`),
			Span:   rule.SingleLine(),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:     "before-request-call",
			Start:  regexp.MustCompile(`^\s*self\.call_before_request\(`),
			Span:   rule.Terminated(`\.await\?;\s*$`),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
		{
			ID:    "handle-api-error",
			Start: regexp.MustCompile(`^(?P<head>.*?)self\.handle_api_error\((?P<err>[A-Za-z_][A-Za-z0-9_]*),[^)]*\)(?P<tail>.*)$`),
			Span:  rule.SingleLine(),
			Action: rule.RewriteAction{
				Kind:     rule.ReplaceLines,
				Template: []string{"${head}map_api_error(${err})${tail}"},
			},
		},
		{
			ID:     "after-response-call",
			Start:  regexp.MustCompile(`^\s*self\.call_after_response\(`),
			Span:   rule.Terminated(`\.await;\s*$`),
			Action: rule.RewriteAction{Kind: rule.Delete},
		},
	}
}
