package syntax

import (
	"sort"

	"swiftstyle/internal/source"
	"swiftstyle/internal/token"
)

// Comment is a comment recorded in source order, doc comments included.
type Comment struct {
	Span source.Span
	Text string
}

// Directive is a "// swiftstyle:..." suppression comment with its position.
type Directive struct {
	Span source.Span
	Name string   // "ignore" or "ignore-file"
	Args []string // rule names; empty means every rule
}

// Tree is the parse result for one file: an arena of nodes rooted at a File
// node, plus everything else the lexer saw. Tokens holds the full stream in
// source order so token-level checks (spacing, operator style) do not have to
// re-lex the file or guess where strings and comments are.
type Tree struct {
	FileID source.FileID
	Root   NodeID

	nodes      *Arena[Node]
	Tokens     []token.Token
	Comments   []Comment
	Directives []Directive
}

// NewTree creates an empty tree for the file. capHint sizes the node arena.
func NewTree(fileID source.FileID, capHint uint) *Tree {
	return &Tree{
		FileID: fileID,
		nodes:  NewArena[Node](capHint),
	}
}

// add allocates a node and returns its ID.
func (t *Tree) add(n Node) NodeID {
	return NodeID(t.nodes.Allocate(n))
}

// Node returns the node for id, or nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return int(t.nodes.Len())
}

// FirstChild returns the first direct child of the given kind, or NoNodeID.
func (t *Tree) FirstChild(id NodeID, kind NodeKind) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNodeID
	}
	for _, c := range n.Children {
		if t.Node(c).Kind == kind {
			return c
		}
	}
	return NoNodeID
}

// ChildrenOfKind returns the direct children of the given kind in order.
func (t *Tree) ChildrenOfKind(id NodeID, kind NodeKind) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, c := range n.Children {
		if t.Node(c).Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Walk calls visit in depth-first pre-order starting at id. Returning false
// skips the node's subtree.
func (t *Tree) Walk(id NodeID, visit func(NodeID) bool) {
	if !id.IsValid() {
		return
	}
	if !visit(id) {
		return
	}
	for _, c := range t.Node(id).Children {
		t.Walk(c, visit)
	}
}

// TokensIn returns the tokens whose spans lie fully inside sp, in source
// order. Token-window checks use this instead of re-lexing the range.
func (t *Tree) TokensIn(sp source.Span) []token.Token {
	lo := sort.Search(len(t.Tokens), func(i int) bool {
		return t.Tokens[i].Span.Start >= sp.Start
	})
	hi := lo
	for hi < len(t.Tokens) && t.Tokens[hi].Span.End <= sp.End {
		hi++
	}
	return t.Tokens[lo:hi]
}

// TokenAt returns the token whose span contains the byte offset, or a zero
// token when the offset falls between tokens.
func (t *Tree) TokenAt(off uint32) (token.Token, bool) {
	i := sort.Search(len(t.Tokens), func(i int) bool {
		return t.Tokens[i].Span.End > off
	})
	if i < len(t.Tokens) && t.Tokens[i].Span.Start <= off {
		return t.Tokens[i], true
	}
	return token.Token{}, false
}
