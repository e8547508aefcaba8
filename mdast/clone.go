package mdast

import (
	"slices"
)

// Clone returns a deep copy of the tree rooted at n so it could be rewritten
// without touching the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	c.Position = clonePosition(n.Position)
	c.Props = n.Props.Clone()
	c.Attributes = slices.Clone(n.Attributes)
	c.Align = slices.Clone(n.Align)
	if n.Start != nil {
		start := *n.Start
		c.Start = &start
	}
	if n.Checked != nil {
		checked := *n.Checked
		c.Checked = &checked
	}
	if n.data != nil {
		c.data = make(map[string][]byte, len(n.data))
		for k, v := range n.data {
			c.data[k] = slices.Clone(v)
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

func clonePosition(p *Position) *Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
