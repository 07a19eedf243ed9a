package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

// TreeNodeOutput is one node of the `dump --tree` JSON form.
type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Span     source.Span      `json:"span"`
	Name     string           `json:"name,omitempty"`
	Mods     []string         `json:"mods,omitempty"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

// Tree renders the syntax tree with box-drawing connectors, one node per
// line. Rule authors use this to see which kinds a check will be handed.
func Tree(w io.Writer, tree *syntax.Tree, fs *source.FileSet) error {
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("tree has no root")
	}

	header := "File"
	if fs != nil {
		header = fs.Get(tree.FileID).FormatPath("auto", fs.BaseDir())
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(root.Span, fs)); err != nil {
		return err
	}
	return writeTreeChildren(w, tree, root.Children, fs, "")
}

func writeTreeChildren(w io.Writer, tree *syntax.Tree, children []syntax.NodeID, fs *source.FileSet, prefix string) error {
	for i, id := range children {
		n := tree.Node(id)
		connector, childPrefix := "├─ ", prefix+"│  "
		if i == len(children)-1 {
			connector, childPrefix = "└─ ", prefix+"   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, nodeLabel(n, fs)); err != nil {
			return err
		}
		if err := writeTreeChildren(w, tree, n.Children, fs, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n *syntax.Node, fs *source.FileSet) string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	if n.Name != "" {
		fmt.Fprintf(&sb, " %q", n.Name)
	}
	if mods := n.Mods.Names(); len(mods) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(mods, " "))
	}
	fmt.Fprintf(&sb, " (span: %s)", formatSpan(n.Span, fs))
	return sb.String()
}

// TreeJSON renders the syntax tree as nested JSON objects.
func TreeJSON(w io.Writer, tree *syntax.Tree) error {
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("tree has no root")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildTreeJSON(tree, tree.Root))
}

func buildTreeJSON(tree *syntax.Tree, id syntax.NodeID) TreeNodeOutput {
	n := tree.Node(id)
	output := TreeNodeOutput{
		Kind: n.Kind.String(),
		Span: n.Span,
		Name: n.Name,
		Mods: n.Mods.Names(),
	}
	for _, c := range n.Children {
		output.Children = append(output.Children, buildTreeJSON(tree, c))
	}
	return output
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
