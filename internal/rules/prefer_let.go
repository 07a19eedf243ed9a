package rules

import (
	"fmt"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/syntax"
)

var preferLetRule = &Rule{
	Code:    diag.StylePreferLet,
	Name:    "prefer-let",
	Summary: "Use 'let' for bindings that are never mutated",
	Rationale: "An immutable binding tells the reader the value is fixed; 'var' " +
		"promises a mutation that never happens.",
	Severity: diag.SevWarning,
	Kinds:    []syntax.NodeKind{syntax.VarDecl},
	Fixable:  true,
	Check:    checkPreferLet,
}

// requiresVar covers modifiers whose semantics demand a mutable binding.
const requiresVar = syntax.ModLazy | syntax.ModWeak | syntax.ModUnowned

func checkPreferLet(c *Context, id syntax.NodeID) []diag.Diagnostic {
	decl := c.Tree.Node(id)
	if decl.Mods&requiresVar != 0 {
		return nil
	}

	var names []string
	for _, ch := range decl.Children {
		b := c.Tree.Node(ch)
		switch b.Kind {
		case syntax.Attribute:
			// Property wrappers and @IBOutlet need 'var'.
			return nil
		case syntax.PatternBinding:
			if b.Name == "" {
				// Tuple destructuring: no single identifier to track.
				return nil
			}
			if c.Tree.FirstChild(ch, syntax.AccessorBlock).IsValid() {
				// Computed or observed property.
				return nil
			}
			names = append(names, b.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	scope := c.enclosingScope(id)
	for _, name := range names {
		if c.mutated(scope, name) {
			return nil
		}
	}

	msg := "bindings are never mutated; use 'let'"
	if len(names) == 1 {
		msg = fmt.Sprintf("'%s' is never mutated; use 'let'", names[0])
	}
	kw := decl.NameSpan // the 'var' keyword
	fix := diag.Fix{
		Title:         "Replace 'var' with 'let'",
		Applicability: diag.SafeWithHeuristics,
		IsPreferred:   true,
		Edits:         []diag.TextEdit{{Span: kw, NewText: "let", OldText: "var"}},
	}
	return []diag.Diagnostic{{Primary: kw, Message: msg, Fixes: []diag.Fix{fix}}}
}

// enclosingScope returns the innermost code block, closure, or type body that
// contains the declaration; mutation evidence is searched within it. For a
// stored property that is the whole type declaration, so sibling methods
// count. Top-level declarations fall back to the file root.
func (c *Context) enclosingScope(decl syntax.NodeID) syntax.NodeID {
	target := c.Tree.Node(decl).Span
	best := c.Tree.Root
	c.Tree.Walk(c.Tree.Root, func(id syntax.NodeID) bool {
		if id == c.Tree.Root {
			return true
		}
		if id == decl {
			return false
		}
		n := c.Tree.Node(id)
		if !n.Span.Contains(target) {
			return false
		}
		switch n.Kind {
		case syntax.CodeBlock, syntax.ClosureExpr,
			syntax.ClassDecl, syntax.StructDecl, syntax.EnumDecl,
			syntax.ActorDecl, syntax.ExtensionDecl:
			best = id
		}
		return true
	})
	return best
}

// mutated reports whether the scope subtree carries mutation evidence for the
// name: a store whose leftmost root is the name (directly or through 'self'),
// an '&name' inout pass, or a 'name.method(...)' call that may go through a
// mutating member. Shadowing inside nested scopes is ignored; a false hit
// only suppresses the suggestion.
func (c *Context) mutated(scope syntax.NodeID, name string) bool {
	found := false
	c.Tree.Walk(scope, func(id syntax.NodeID) bool {
		if found {
			return false
		}
		n := c.Tree.Node(id)
		switch n.Kind {
		case syntax.AssignExpr:
			if len(n.Children) > 0 && c.storeTarget(n.Children[0]) == name {
				found = true
			}
		case syntax.InoutExpr:
			if len(n.Children) == 1 {
				t := c.Tree.Node(n.Children[0])
				if t.Kind == syntax.IdentExpr && t.Name == name {
					found = true
				}
			}
		case syntax.CallExpr:
			if len(n.Children) == 0 {
				break
			}
			callee := c.Tree.Node(n.Children[0])
			if callee.Kind == syntax.MemberExpr && len(callee.Children) == 1 &&
				c.storeTarget(callee.Children[0]) == name {
				found = true
			}
		}
		return !found
	})
	return found
}

// storeTarget resolves the name a store is rooted at: it descends member,
// subscript, unwrap, and chain bases to the leftmost identifier, and resolves
// 'self.x' to "x" so stored-property writes inside methods count.
func (c *Context) storeTarget(id syntax.NodeID) string {
	n := c.Tree.Node(id)
	switch n.Kind {
	case syntax.IdentExpr:
		return n.Name
	case syntax.MemberExpr:
		if len(n.Children) != 1 {
			return ""
		}
		base := c.Tree.Node(n.Children[0])
		if base.Kind == syntax.IdentExpr && base.Name == "self" {
			return n.Name
		}
		return c.storeTarget(n.Children[0])
	case syntax.SubscriptExpr, syntax.ForceUnwrapExpr, syntax.OptionalChainExpr:
		if len(n.Children) == 0 {
			return ""
		}
		return c.storeTarget(n.Children[0])
	default:
		return ""
	}
}
