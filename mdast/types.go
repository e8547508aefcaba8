// Package mdast defines the Markdown syntax tree attribute resolution works
// on. The model follows mdast (https://github.com/syntax-tree/mdast), which is
// also the JSON form trees are exchanged in.
package mdast

import (
	"fmt"
)

// Kind distinguishes the different kinds of syntax tree nodes.
type Kind string

const (
	KindRoot Kind = "root"

	// Block content.
	KindHeading       Kind = "heading"
	KindParagraph     Kind = "paragraph"
	KindCode          Kind = "code"
	KindBlockquote    Kind = "blockquote"
	KindList          Kind = "list"
	KindListItem      Kind = "listItem"
	KindTable         Kind = "table"
	KindTableRow      Kind = "tableRow"
	KindTableCell     Kind = "tableCell"
	KindThematicBreak Kind = "thematicBreak"

	// Phrasing content.
	KindEmphasis   Kind = "emphasis"
	KindStrong     Kind = "strong"
	KindLink       Kind = "link"
	KindImage      Kind = "image"
	KindInlineCode Kind = "inlineCode"
	KindText       Kind = "text"

	// KindAttributes is a parsed "{...}" annotation waiting to be attached to
	// some other node. It never survives attribute resolution.
	KindAttributes Kind = "attributes"
)

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known node kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindRoot,
		KindHeading, KindParagraph, KindCode, KindBlockquote, KindList, KindListItem,
		KindTable, KindTableRow, KindTableCell, KindThematicBreak,
		KindEmphasis, KindStrong, KindLink, KindImage, KindInlineCode, KindText,
		KindAttributes:
		return true
	}
	return false
}

// IsInline reports whether nodes of this kind may receive attributes written
// immediately after them on the same line, as in "*em*{.class}".
func (k Kind) IsInline() bool {
	switch k {
	case KindEmphasis, KindStrong, KindLink, KindImage, KindInlineCode:
		return true
	}
	return false
}

// IsLeaf reports whether nodes of this kind must not have children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindCode, KindThematicBreak, KindImage, KindInlineCode, KindText, KindAttributes:
		return true
	}
	return false
}

// IsLiteral reports whether nodes of this kind carry their content in Value.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindCode, KindInlineCode, KindText, KindAttributes:
		return true
	}
	return false
}

// Point is a single place in the source document. Line and Column are
// 1-based, Offset is 0-based and -1 when unknown.
type Point struct {
	Line   int
	Column int
	Offset int
}

// Known reports whether point has line information.
func (p Point) Known() bool {
	return p.Line > 0
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position is the source range a node was built from.
type Position struct {
	Start Point
	End   Point
}

func (p *Position) String() string {
	if p == nil {
		return "?"
	}
	return p.Start.String() + "-" + p.End.String()
}

// Node is a single syntax tree node. Which fields are meaningful depends on
// Kind, unused fields stay at their zero values.
type Node struct {
	Kind     Kind
	Children []*Node
	Position *Position

	// Props is the resolved property bag, kept under data.hProperties in the
	// JSON form and consumed by the renderer.
	Props *Properties

	// Value holds literal content of text, inlineCode and code nodes and the
	// original source text of an attributes node.
	Value string

	// Attributes holds the parsed annotation of an attributes node. On code
	// nodes it is the side channel the tree builder uses instead of child
	// nodes.
	Attributes Attributes

	Depth int // heading

	Lang string // code
	Meta string // code

	Ordered bool  // list
	Start   *int  // list
	Spread  bool  // list, listItem
	Checked *bool // listItem

	URL   string // link, image
	Title string // link, image
	Alt   string // image

	Align []string // table

	// data keeps everything from the JSON data object except hProperties so
	// it survives a round trip.
	data map[string][]byte
}

// Properties returns node property bag creating an empty one if necessary.
func (n *Node) Properties() *Properties {
	if n.Props == nil {
		n.Props = NewProperties()
	}
	return n.Props
}

// Last returns the last child of the node or nil.
func (n *Node) Last() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Text creates a text node.
func Text(value string, pos *Position) *Node {
	return &Node{Kind: KindText, Value: value, Position: pos}
}

// Walk traverses the tree rooted at n depth first, calling fn for every node
// before its children. Children are skipped when fn returns false.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}
