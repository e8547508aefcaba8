package mdast

import (
	"fmt"
	"slices"
	"strings"

	"mdattr/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable dump of the tree rooted at n. It exists solely
// for manual inspection during debugging and in debug reports.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	return treeWriter{debug.NewTreeWriter()}.node(0, n).String()
}

func (tw treeWriter) node(depth int, n *Node) treeWriter {
	var b strings.Builder
	b.WriteString(string(n.Kind))
	switch n.Kind {
	case KindHeading:
		fmt.Fprintf(&b, " depth=%d", n.Depth)
	case KindCode:
		if n.Lang != "" {
			fmt.Fprintf(&b, " lang=%q", n.Lang)
		}
		if n.Meta != "" {
			fmt.Fprintf(&b, " meta=%q", n.Meta)
		}
	case KindList:
		fmt.Fprintf(&b, " ordered=%t spread=%t", n.Ordered, n.Spread)
		if n.Start != nil {
			fmt.Fprintf(&b, " start=%d", *n.Start)
		}
	case KindListItem:
		fmt.Fprintf(&b, " spread=%t", n.Spread)
		if n.Checked != nil {
			fmt.Fprintf(&b, " checked=%t", *n.Checked)
		}
	case KindLink, KindImage:
		fmt.Fprintf(&b, " url=%q", n.URL)
		if n.Alt != "" {
			fmt.Fprintf(&b, " alt=%q", n.Alt)
		}
	}
	if n.Position != nil {
		fmt.Fprintf(&b, " [%s]", n.Position)
	}
	tw.Line(depth, "%s", b.String())

	if n.Kind.IsLiteral() {
		tw.TextBlock(depth+1, "value", n.Value)
	}
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for _, a := range n.Attributes {
			if !slices.Contains(keys, a.Key) {
				keys = append(keys, a.Key)
			}
		}
		tw.Pairs(depth+1, "attributes", keys, func(k string) string {
			v, _ := n.Attributes.Get(k)
			return v
		})
	}
	if !n.Props.Empty() {
		tw.Pairs(depth+1, "properties", n.Props.Keys(), func(k string) string {
			v, _ := n.Props.Get(k)
			return v
		})
	}
	for _, child := range n.Children {
		tw.node(depth+1, child)
	}
	return tw
}
