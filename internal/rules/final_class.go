package rules

import (
	"fmt"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
	"swiftstyle/internal/token"
)

var finalClassRule = &Rule{
	Code:    diag.StyleFinalClass,
	Name:    "final-class",
	Summary: "Classes are final unless designed for subclassing",
	Rationale: "'final' states that no subclass exists and enables static " +
		"dispatch; 'open' states the opposite on purpose. A bare 'class' " +
		"states nothing.",
	Severity: diag.SevWarning,
	Kinds:    []syntax.NodeKind{syntax.ClassDecl},
	Fixable:  true,
	Check:    checkFinalClass,
}

func checkFinalClass(c *Context, id syntax.NodeID) []diag.Diagnostic {
	n := c.Tree.Node(id)
	if n.Mods.Has(syntax.ModFinal) || n.Mods.Has(syntax.ModOpen) {
		return nil
	}

	d := diag.Diagnostic{
		Primary: n.NameSpan,
		Message: fmt.Sprintf("class %q is neither final nor open; mark it 'final' or open it deliberately", n.Name),
	}
	// The insertion point is the 'class' keyword itself; the first KwClass in
	// the declaration span is it, since members come after the brace.
	for _, tok := range c.Tree.TokensIn(n.Span) {
		if tok.Kind != token.KwClass {
			continue
		}
		at := source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start}
		d.Fixes = []diag.Fix{{
			Title:         "Mark the class 'final'",
			Applicability: diag.SafeWithHeuristics,
			IsPreferred:   true,
			Edits:         []diag.TextEdit{{Span: at, NewText: "final "}},
		}}
		break
	}
	return []diag.Diagnostic{d}
}
