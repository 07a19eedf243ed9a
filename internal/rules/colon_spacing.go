package rules

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
	"swiftstyle/internal/token"
)

var colonSpacingRule = &Rule{
	Code:    diag.StyleColonSpacing,
	Name:    "colon-spacing",
	Summary: "Colons hug the left side and take one space after",
	Rationale: "Uniform 'name: Type' and 'key: value' punctuation; a floating " +
		"colon reads as an operator.",
	Severity: diag.SevWarning,
	Kinds:    []syntax.NodeKind{syntax.File},
	Fixable:  true,
	Check:    checkColonSpacing,
}

// Runs once per file over the token stream, so string literals and comments
// are already out of the way. Ternary colons are exempt: 'a ? b : c' wants
// space on both sides.
func checkColonSpacing(c *Context, _ syntax.NodeID) []diag.Diagnostic {
	ternary := c.ternaryColons()
	toks := c.Tree.Tokens

	var out []diag.Diagnostic
	for i, tok := range toks {
		if tok.Kind != token.Colon || ternary[tok.Span.Start] {
			continue
		}
		if i == 0 || i+1 >= len(toks) || tok.StartsLine() {
			continue
		}
		prev, next := toks[i-1], toks[i+1]
		if prev.Kind == token.LBracket && next.Kind == token.RBracket {
			continue // empty dictionary literal [:]
		}

		spaceBefore := len(tok.Leading) > 0 && allSpaces(tok.Leading)
		gapAfter := -1
		if next.Kind != token.EOF && !next.StartsLine() {
			switch {
			case next.Span.Start == tok.Span.End:
				gapAfter = 0
			case allSpaces(next.Leading):
				gapAfter = int(next.Span.Start - tok.Span.End)
			}
		}
		if !spaceBefore && (gapAfter < 0 || gapAfter == 1) {
			continue
		}

		var edits []diag.TextEdit
		var msg string
		if spaceBefore {
			edits = append(edits, diag.TextEdit{
				Span: source.Span{File: tok.Span.File, Start: prev.Span.End, End: tok.Span.Start},
			})
			msg = "no space before ':'"
		}
		switch gapAfter {
		case 0:
			at := source.Span{File: tok.Span.File, Start: tok.Span.End, End: tok.Span.End}
			edits = append(edits, diag.TextEdit{Span: at, NewText: " "})
			msg = "missing space after ':'"
		case 1:
		default:
			if gapAfter > 1 {
				between := source.Span{File: tok.Span.File, Start: tok.Span.End, End: next.Span.Start}
				edits = append(edits, diag.TextEdit{Span: between, NewText: " "})
				msg = "more than one space after ':'"
			}
		}
		if len(edits) == 2 {
			msg = "':' hugs the left side and takes one space after"
		}

		out = append(out, diag.Diagnostic{
			Primary: tok.Span,
			Message: msg,
			Fixes: []diag.Fix{{
				Title:         "Normalize colon spacing",
				Applicability: diag.AlwaysSafe,
				IsPreferred:   true,
				Edits:         edits,
			}},
		})
	}
	return out
}

// ternaryColons returns the start offsets of the ':' tokens that separate
// ternary branches.
func (c *Context) ternaryColons() map[uint32]bool {
	out := make(map[uint32]bool)
	c.Tree.Walk(c.Tree.Root, func(id syntax.NodeID) bool {
		n := c.Tree.Node(id)
		if n.Kind != syntax.TernaryExpr || len(n.Children) < 3 {
			return true
		}
		thenEnd := c.Tree.Node(n.Children[1]).Span.End
		elseStart := c.Tree.Node(n.Children[2]).Span.Start
		between := source.Span{File: n.Span.File, Start: thenEnd, End: elseStart}
		for _, tok := range c.Tree.TokensIn(between) {
			if tok.Kind == token.Colon {
				out[tok.Span.Start] = true
				break
			}
		}
		return true
	})
	return out
}

func allSpaces(trivia []token.Trivia) bool {
	for _, tv := range trivia {
		if tv.Kind != token.TriviaSpace {
			return false
		}
	}
	return true
}
