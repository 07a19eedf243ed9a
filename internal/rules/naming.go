package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

var typeNameRule = &Rule{
	Code:    diag.StyleTypeName,
	Name:    "type-name",
	Summary: "Type names are UpperCamelCase",
	Rationale: "Casing separates types from values at a glance; snake_case or " +
		"a lowercase initial reads as a variable.",
	Severity: diag.SevWarning,
	Kinds: []syntax.NodeKind{
		syntax.ClassDecl, syntax.StructDecl, syntax.EnumDecl,
		syntax.ActorDecl, syntax.ProtocolDecl, syntax.TypealiasDecl,
	},
	Check: checkTypeName,
}

func checkTypeName(c *Context, id syntax.NodeID) []diag.Diagnostic {
	n := c.Tree.Node(id)
	name := n.Name
	if name == "" || c.backticked(n.NameSpan) {
		return nil
	}
	if isUpperCamel(name) {
		return nil
	}
	return []diag.Diagnostic{{
		Primary: n.NameSpan,
		Message: fmt.Sprintf("type name %q should be UpperCamelCase", name),
	}}
}

var identifierNameRule = &Rule{
	Code:    diag.StyleIdentifierName,
	Name:    "identifier-name",
	Summary: "Functions, bindings and parameters are lowerCamelCase",
	Rationale: "snake_case and SCREAMING_CASE come from other ecosystems; one " +
		"casing keeps call sites predictable.",
	Severity: diag.SevWarning,
	Kinds: []syntax.NodeKind{
		syntax.FuncDecl, syntax.VarDecl, syntax.LetDecl, syntax.Param,
	},
	Check: checkIdentifierName,
}

// Static and class bindings are exempt: 'static let MAX_RETRIES' is a common
// constants convention. Operator functions and backticked names are skipped.
func checkIdentifierName(c *Context, id syntax.NodeID) []diag.Diagnostic {
	n := c.Tree.Node(id)
	switch n.Kind {
	case syntax.FuncDecl:
		if !identShaped(n.Name) || c.backticked(n.NameSpan) {
			return nil
		}
		return flagLowerCamel(n.Name, "function", n.NameSpan)
	case syntax.Param:
		if n.Name == "" || n.Name == "_" || !identShaped(n.Name) || c.backticked(n.NameSpan) {
			return nil
		}
		return flagLowerCamel(n.Name, "parameter", n.NameSpan)
	case syntax.VarDecl, syntax.LetDecl:
		if n.Mods.Has(syntax.ModStatic) || n.Mods.Has(syntax.ModClassMember) {
			return nil
		}
		var out []diag.Diagnostic
		for _, ch := range c.Tree.ChildrenOfKind(id, syntax.PatternBinding) {
			b := c.Tree.Node(ch)
			if b.Name == "" || !identShaped(b.Name) || c.backticked(b.NameSpan) {
				continue
			}
			out = append(out, flagLowerCamel(b.Name, "binding", b.NameSpan)...)
		}
		return out
	}
	return nil
}

func flagLowerCamel(name, what string, sp source.Span) []diag.Diagnostic {
	if isLowerCamel(name) {
		return nil
	}
	return []diag.Diagnostic{{
		Primary: sp,
		Message: fmt.Sprintf("%s name %q should be lowerCamelCase", what, name),
	}}
}

// backticked reports whether the declared name was escaped in source; an
// escaped name is deliberate and stays out of casing checks.
func (c *Context) backticked(nameSpan source.Span) bool {
	if nameSpan.Empty() {
		return false
	}
	return c.Text(nameSpan)[0] == '`'
}

// identShaped filters out operator names like "==" or "<*>".
func identShaped(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r == '_' || unicode.IsLetter(r)
}

// Swift compares identifiers after NFC normalization, so casing checks do the
// same: a decomposed "e" + combining accent counts as one lowercase letter.
func isUpperCamel(name string) bool {
	name = norm.NFC.String(name)
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(r) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}

func isLowerCamel(name string) bool {
	name = norm.NFC.String(name)
	// One leading underscore is a private-storage convention, not snake_case.
	name = strings.TrimPrefix(name, "_")
	if name == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLower(r) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
