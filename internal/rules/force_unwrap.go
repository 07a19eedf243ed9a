package rules

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/syntax"
)

var forceUnwrapRule = &Rule{
	Code:    diag.StyleForceUnwrap,
	Name:    "force-unwrap",
	Summary: "Avoid force unwraps, forced casts and forced tries",
	Rationale: "A failed '!' crashes at runtime. Conditional binding keeps the " +
		"failure path visible in code instead of in a crash log.",
	Severity: diag.SevWarning,
	Kinds: []syntax.NodeKind{
		syntax.ForceUnwrapExpr,
		syntax.ForceCastExpr,
		syntax.ForceTryExpr,
	},
	Check: checkForceUnwrap,
}

// The parser already excludes the sanctioned forms: '!=' lexes as one token,
// prefix '!' is negation, and 'T!' annotations are skipped as type spans, so
// none of them ever reach this check.
func checkForceUnwrap(c *Context, id syntax.NodeID) []diag.Diagnostic {
	n := c.Tree.Node(id)
	sp := n.NameSpan
	if sp.Empty() {
		sp = n.Span
	}
	var msg string
	switch n.Kind {
	case syntax.ForceUnwrapExpr:
		msg = "force unwrap; prefer 'if let', 'guard let' or '??'"
	case syntax.ForceCastExpr:
		msg = "forced cast; prefer 'as?' with a conditional binding"
	case syntax.ForceTryExpr:
		msg = "forced try; prefer 'try?' or a do/catch"
	default:
		return nil
	}
	return []diag.Diagnostic{{Primary: sp, Message: msg}}
}
