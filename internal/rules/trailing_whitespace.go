package rules

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
	"swiftstyle/internal/token"
)

var trailingWhitespaceRule = &Rule{
	Code:    diag.StyleTrailingWhitespace,
	Name:    "trailing-whitespace",
	Summary: "No spaces or tabs before a line break",
	Rationale: "Invisible bytes churn diffs and trip editors that strip them " +
		"on save.",
	Severity: diag.SevWarning,
	Kinds:    []syntax.NodeKind{syntax.File},
	Fixable:  true,
	Check:    checkTrailingWhitespace,
}

// Scans raw lines; runs inside multiline string literals are content, not
// style, and stay untouched so the fix remains always-safe.
func checkTrailingWhitespace(c *Context, _ syntax.NodeID) []diag.Diagnostic {
	content := c.File.Content
	var out []diag.Diagnostic

	lineStart := 0
	for i := 0; i <= len(content); i++ {
		if i != len(content) && content[i] != '\n' {
			continue
		}
		j := i
		for j > lineStart && (content[j-1] == ' ' || content[j-1] == '\t') {
			j--
		}
		lineStart = i + 1
		if j == i {
			continue
		}
		run := source.Span{File: c.File.ID, Start: uint32(j), End: uint32(i)}
		if tok, ok := c.Tree.TokenAt(run.Start); ok && tok.Kind == token.StringLit {
			continue
		}
		out = append(out, diag.Diagnostic{
			Primary: run,
			Message: "trailing whitespace",
			Fixes: []diag.Fix{{
				Title:         "Delete trailing whitespace",
				Applicability: diag.AlwaysSafe,
				IsPreferred:   true,
				Edits:         []diag.TextEdit{{Span: run}},
			}},
		})
	}
	return out
}
