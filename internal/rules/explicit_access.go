package rules

import (
	"fmt"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/syntax"
)

var explicitAccessRule = &Rule{
	Code:    diag.StyleExplicitAccess,
	Name:    "explicit-access",
	Summary: "Top-level declarations state their access level",
	Rationale: "Relying on implicit 'internal' hides an API decision; spelling " +
		"the level out makes the surface reviewable.",
	Severity: diag.SevWarning,
	Kinds: []syntax.NodeKind{
		syntax.ClassDecl, syntax.StructDecl, syntax.EnumDecl,
		syntax.ActorDecl, syntax.ProtocolDecl, syntax.FuncDecl,
		syntax.VarDecl, syntax.LetDecl, syntax.TypealiasDecl,
	},
	Check: checkExplicitAccess,
}

// Extensions and imports are out of scope: an extension inherits visibility
// semantics from its members and an import has none.
func checkExplicitAccess(c *Context, id syntax.NodeID) []diag.Diagnostic {
	if !c.IsTopLevel(id) {
		return nil
	}
	n := c.Tree.Node(id)
	if n.Mods.HasAccessLevel() {
		return nil
	}

	word := declWord(n.Kind)
	name := n.Name
	if name == "" {
		// var/let carry names on their bindings.
		for _, ch := range c.Tree.ChildrenOfKind(id, syntax.PatternBinding) {
			if b := c.Tree.Node(ch); b.Name != "" {
				name = b.Name
				break
			}
		}
	}

	sp := n.NameSpan
	if sp.Empty() {
		sp = n.Span
	}
	msg := fmt.Sprintf("top-level %s has no explicit access level", word)
	if name != "" {
		msg = fmt.Sprintf("top-level %s %q has no explicit access level", word, name)
	}
	return []diag.Diagnostic{{Primary: sp, Message: msg}}
}

func declWord(k syntax.NodeKind) string {
	switch k {
	case syntax.ClassDecl:
		return "class"
	case syntax.StructDecl:
		return "struct"
	case syntax.EnumDecl:
		return "enum"
	case syntax.ActorDecl:
		return "actor"
	case syntax.ProtocolDecl:
		return "protocol"
	case syntax.FuncDecl:
		return "function"
	case syntax.VarDecl:
		return "variable"
	case syntax.LetDecl:
		return "constant"
	case syntax.TypealiasDecl:
		return "typealias"
	default:
		return "declaration"
	}
}
