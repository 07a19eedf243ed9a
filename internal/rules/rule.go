package rules

import (
	"swiftstyle/internal/diag"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

// Rule describes one style check as data. Checks receive a read-only Context
// and return diagnostics; Code and the effective Severity are stamped by the
// caller, so a check only fills Message, Primary, Notes, and Fixes.
type Rule struct {
	// Code is the stable numeric identity; it renders as Name in output.
	Code diag.Code
	// Name is the kebab-case id used in config, flags, and ignore directives.
	Name string
	// Summary is the one-line description shown by `swiftstyle rules`.
	Summary string
	// Rationale explains what the guide gains from the rule.
	Rationale string
	// Severity is the default; the registry can override it per rule.
	Severity diag.Severity
	// Kinds filters dispatch to these node kinds. Empty means every node.
	// Token- and line-level checks filter on syntax.File and run once per
	// file off the tree's token stream.
	Kinds []syntax.NodeKind
	// Fixable reports whether the rule ever attaches fixes.
	Fixable bool

	Check CheckFunc
}

// CheckFunc inspects one node and returns its findings, usually at most one.
type CheckFunc func(c *Context, id syntax.NodeID) []diag.Diagnostic

// Context gives checks read access to the file under check plus lazily built
// per-file indexes shared by all rules of one walk. It is not safe for
// concurrent use; each file's walk owns its context.
type Context struct {
	FS   *source.FileSet
	File *source.File
	Tree *syntax.Tree

	enums    map[string]enumInfo
	topLevel map[syntax.NodeID]bool
}

// NewContext prepares a context for one file's walk.
func NewContext(fs *source.FileSet, file *source.File, tree *syntax.Tree) *Context {
	return &Context{FS: fs, File: file, Tree: tree}
}

// Text returns the source text behind a span.
func (c *Context) Text(sp source.Span) string {
	return c.FS.Text(sp)
}

// IsTopLevel reports whether the node is a direct child of the file root.
func (c *Context) IsTopLevel(id syntax.NodeID) bool {
	if c.topLevel == nil {
		root := c.Tree.Node(c.Tree.Root)
		c.topLevel = make(map[syntax.NodeID]bool, len(root.Children))
		for _, ch := range root.Children {
			c.topLevel[ch] = true
		}
	}
	return c.topLevel[id]
}

type enumInfo struct {
	cases    []string
	nameSpan source.Span
}

// enumIndex maps every enum declared in the file to its case names. Nested
// enums index under their simple name.
func (c *Context) enumIndex() map[string]enumInfo {
	if c.enums != nil {
		return c.enums
	}
	c.enums = make(map[string]enumInfo)
	c.Tree.Walk(c.Tree.Root, func(id syntax.NodeID) bool {
		n := c.Tree.Node(id)
		if n.Kind != syntax.EnumDecl || n.Name == "" {
			return true
		}
		info := enumInfo{nameSpan: n.NameSpan}
		for _, caseID := range c.Tree.ChildrenOfKind(id, syntax.EnumCaseDecl) {
			for _, el := range c.Tree.ChildrenOfKind(caseID, syntax.EnumCaseElement) {
				info.cases = append(info.cases, c.Tree.Node(el).Name)
			}
		}
		c.enums[n.Name] = info
		return true
	})
	return c.enums
}
