package attrs

import (
	"slices"
	"testing"

	"mdattr/mdast"
)

// span returns position within a single line, offsets are derived from
// columns as if the line started at lineOffset.
func span(line, startCol, endCol, lineOffset int) *mdast.Position {
	return &mdast.Position{
		Start: mdast.Point{Line: line, Column: startCol, Offset: lineOffset + startCol - 1},
		End:   mdast.Point{Line: line, Column: endCol, Offset: lineOffset + endCol - 1},
	}
}

// lines returns position covering whole lines from first to last.
func lines(first, last int) *mdast.Position {
	return &mdast.Position{
		Start: mdast.Point{Line: first, Column: 1, Offset: -1},
		End:   mdast.Point{Line: last, Column: 10, Offset: -1},
	}
}

func node(kind mdast.Kind, pos *mdast.Position, children ...*mdast.Node) *mdast.Node {
	return &mdast.Node{Kind: kind, Position: pos, Children: children}
}

func text(value string, pos *mdast.Position) *mdast.Node {
	return mdast.Text(value, pos)
}

// fragment builds attributes node from key/value pairs.
func fragment(original string, pos *mdast.Position, kv ...string) *mdast.Node {
	n := &mdast.Node{Kind: mdast.KindAttributes, Value: original, Position: pos}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attributes = append(n.Attributes, mdast.Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return n
}

// standalone builds paragraph holding a single attributes node.
func standalone(original string, line int, kv ...string) *mdast.Node {
	return node(mdast.KindParagraph, lines(line, line), fragment(original, lines(line, line), kv...))
}

func requireClass(t *testing.T, n *mdast.Node, want ...string) {
	t.Helper()
	if got := n.Props.Class(); !slices.Equal(got, want) {
		t.Fatalf("%s: class = %v, want %v", n.Kind, got, want)
	}
}

func requireProp(t *testing.T, n *mdast.Node, key, want string) {
	t.Helper()
	got, ok := n.Props.Get(key)
	if !ok {
		t.Fatalf("%s: property %q is missing", n.Kind, key)
	}
	if got != want {
		t.Fatalf("%s: property %q = %q, want %q", n.Kind, key, got, want)
	}
}

func requireNoProps(t *testing.T, n *mdast.Node) {
	t.Helper()
	if !n.Props.Empty() {
		t.Fatalf("%s: unexpected properties %v", n.Kind, n.Props.Keys())
	}
}

func requireKinds(t *testing.T, parent *mdast.Node, want ...mdast.Kind) {
	t.Helper()
	got := make([]mdast.Kind, 0, len(parent.Children))
	for _, c := range parent.Children {
		got = append(got, c.Kind)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("%s: children = %v, want %v", parent.Kind, got, want)
	}
}

func countFragments(root *mdast.Node) int {
	count := 0
	mdast.Walk(root, func(n *mdast.Node, _ int) bool {
		if n.Kind == mdast.KindAttributes {
			count++
		}
		return true
	})
	return count
}
