package rules

import (
	"fmt"
	"strings"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/syntax"
	"swiftstyle/internal/token"
)

var enumDefaultCaseRule = &Rule{
	Code:    diag.StyleEnumDefaultCase,
	Name:    "enum-default-case",
	Summary: "No 'default' in a switch that covers every enum case",
	Rationale: "A redundant 'default' silences the compiler's exhaustiveness " +
		"check, so adding an enum case no longer points at the switches that " +
		"need updating.",
	Severity: diag.SevWarning,
	Kinds:    []syntax.NodeKind{syntax.SwitchStmt},
	Fixable:  true,
	Check:    checkEnumDefaultCase,
}

// The proof is single-file: the subject must resolve to an enum declared in
// this file, either through a binding's type annotation or because the dot
// patterns match exactly one declared enum, and the case clauses must name
// every declared case. Anything short of that proof keeps the 'default'.
func checkEnumDefaultCase(c *Context, id syntax.NodeID) []diag.Diagnostic {
	defID := c.Tree.FirstChild(id, syntax.DefaultClause)
	if !defID.IsValid() {
		return nil
	}
	if att := c.Tree.FirstChild(defID, syntax.Attribute); att.IsValid() &&
		c.Tree.Node(att).Name == "unknown" {
		// '@unknown default' is the sanctioned guard for non-frozen enums.
		return nil
	}

	covered := make(map[string]bool)
	for _, caseID := range c.Tree.ChildrenOfKind(id, syntax.CaseClause) {
		for _, name := range c.casePatternNames(caseID) {
			covered[name] = true
		}
	}
	if len(covered) == 0 {
		return nil
	}

	enumName, info, ok := c.resolveSwitchEnum(id, covered)
	if !ok {
		return nil
	}
	for _, cs := range info.cases {
		if !covered[cs] {
			return nil
		}
	}

	def := c.Tree.Node(defID)
	fix := diag.Fix{
		Title:         "Remove the redundant 'default' clause",
		Applicability: diag.ManualReview,
		Edits:         []diag.TextEdit{{Span: def.Span, NewText: ""}},
	}
	d := diag.Diagnostic{
		Primary: def.NameSpan,
		Message: fmt.Sprintf("switch over %q covers every case; 'default' is unreachable", enumName),
		Notes:   []diag.Note{{Span: info.nameSpan, Msg: fmt.Sprintf("enum %q declared here", enumName)}},
		Fixes:   []diag.Fix{fix},
	}
	return []diag.Diagnostic{d}
}

// casePatternNames collects the case names a clause's patterns reach through
// dot syntax: ".idle" and "State.idle" both yield "idle". The scan stops at
// the label colon or a 'where' guard so guard expressions stay out.
func (c *Context) casePatternNames(caseID syntax.NodeID) []string {
	var names []string
	depth := 0
	toks := c.Tree.TokensIn(c.Tree.Node(caseID).Span)
	for i, tok := range toks {
		switch tok.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Colon, token.KwWhere:
			if depth == 0 {
				return names
			}
		case token.Ident:
			if i > 0 && toks[i-1].Kind == token.Dot {
				names = append(names, tok.IdentText())
			}
		}
	}
	return names
}

// resolveSwitchEnum identifies the enum a switch ranges over. The subject
// wins when it is a name with a type annotation naming a local enum; failing
// that, the covered dot names must fit exactly one declared enum.
func (c *Context) resolveSwitchEnum(switchID syntax.NodeID, covered map[string]bool) (string, enumInfo, bool) {
	index := c.enumIndex()
	if len(index) == 0 {
		return "", enumInfo{}, false
	}

	sw := c.Tree.Node(switchID)
	if len(sw.Children) > 0 {
		subj := c.Tree.Node(sw.Children[0])
		if subj.Kind == syntax.IdentExpr || subj.Kind == syntax.MemberExpr {
			name, optional := c.annotatedEnum(subj.Name, index)
			if name != "" {
				return name, index[name], true
			}
			if optional {
				// A 'default' over an optional subject still handles nil.
				return "", enumInfo{}, false
			}
		}
	}

	var match string
	for name, info := range index {
		if coversSubset(covered, info.cases) {
			if match != "" {
				return "", enumInfo{}, false // ambiguous
			}
			match = name
		}
	}
	if match == "" {
		return "", enumInfo{}, false
	}
	return match, index[match], true
}

// annotatedEnum finds a binding or parameter with the subject's name whose
// type annotation names a declared enum. A matching annotation with a
// trailing '?' or '!' reports optional=true instead of a name.
func (c *Context) annotatedEnum(subject string, index map[string]enumInfo) (name string, optional bool) {
	if subject == "" {
		return "", false
	}
	c.Tree.Walk(c.Tree.Root, func(id syntax.NodeID) bool {
		if name != "" {
			return false
		}
		n := c.Tree.Node(id)
		if (n.Kind != syntax.PatternBinding && n.Kind != syntax.Param) || n.Name != subject {
			return true
		}
		annID := c.Tree.FirstChild(id, syntax.TypeAnnotation)
		if !annID.IsValid() {
			return true
		}
		typ := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Text(c.Tree.Node(annID).Span)), ":"))
		if wrapped, opt := strings.CutSuffix(typ, "?"); opt {
			typ = wrapped
			optional = true
		} else if wrapped, iuo := strings.CutSuffix(typ, "!"); iuo {
			typ = wrapped
			optional = true
		}
		if _, ok := index[typ]; ok && !optional {
			name = typ
		}
		return true
	})
	return name, optional
}

// coversSubset reports whether every covered name is a declared case.
func coversSubset(covered map[string]bool, cases []string) bool {
	declared := make(map[string]bool, len(cases))
	for _, cs := range cases {
		declared[cs] = true
	}
	for name := range covered {
		if !declared[name] {
			return false
		}
	}
	return true
}
