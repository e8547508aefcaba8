package attrs

import (
	"slices"

	"go.uber.org/zap"

	"mdattr/mdast"
)

// Normalization passes rewrite tree shapes produced by the tree builder into
// a form generic resolution could handle. Order of the passes matters, later
// passes expect tree already reshaped by earlier ones.

func normalizeFragments(root *mdast.Node, log *zap.Logger) {
	relocateSideChannel(root, log)
	flattenLeafChildren(root, log)
	attachStandalone(root, log)
	attachAfterBreak(root, log)
}

// relocateSideChannel merges attributes which tree builder stores directly on
// nodes with opaque content (fenced code) into their property bags.
func relocateSideChannel(root *mdast.Node, log *zap.Logger) {
	mdast.Walk(root, func(n *mdast.Node, _ int) bool {
		if n.Kind == mdast.KindAttributes || n.Attributes == nil {
			return true
		}
		log.Debug("Relocating side channel attributes", zap.Stringer("kind", n.Kind), zap.Stringer("position", n.Position))
		mergeAttributes(n, n.Attributes)
		n.Attributes = nil
		return true
	})
}

// flattenLeafChildren restores childless invariant for leaf kinds. Builder
// could produce thematic break (after converting setext heading) with
// attribute fragments as children: their attributes are merged into the node
// itself in order and fragments are removed. Any other child is left where it
// is for Verify to report.
func flattenLeafChildren(root *mdast.Node, log *zap.Logger) {
	mdast.Walk(root, func(n *mdast.Node, _ int) bool {
		if !n.Kind.IsLeaf() || n.Children == nil {
			return true
		}
		var kept []*mdast.Node
		for _, child := range n.Children {
			if child.Kind != mdast.KindAttributes {
				log.Warn("Unexpected child of leaf node", zap.Stringer("kind", n.Kind), zap.Stringer("child", child.Kind), zap.Stringer("position", n.Position))
				kept = append(kept, child)
				continue
			}
			mergeAttributes(n, child.Attributes)
		}
		log.Debug("Flattened children of leaf node", zap.Stringer("kind", n.Kind), zap.Int("children", len(n.Children)), zap.Int("kept", len(kept)))
		n.Children = kept
		return false
	})
}

// standaloneFragment returns attribute fragment if paragraph consists of it
// and nothing else.
func standaloneFragment(n *mdast.Node) *mdast.Node {
	if n.Kind != mdast.KindParagraph || len(n.Children) != 1 || n.Children[0].Kind != mdast.KindAttributes {
		return nil
	}
	return n.Children[0]
}

// linesAdjacent reports whether next starts on the line immediately following
// the last line of prev. Nodes without positions are never adjacent.
func linesAdjacent(prev, next *mdast.Node) bool {
	if prev.Position == nil || next.Position == nil || !prev.Position.End.Known() || !next.Position.Start.Known() {
		return false
	}
	return prev.Position.End.Line == next.Position.Start.Line-1
}

// attachStandalone attaches standalone attribute lines to the block directly
// following them and removes the lines. When there is a blank line between
// them both are left for generic resolution.
func attachStandalone(parent *mdast.Node, log *zap.Logger) {
	for i := 0; i < len(parent.Children); {
		frag := standaloneFragment(parent.Children[i])
		if frag == nil || i == len(parent.Children)-1 || !linesAdjacent(parent.Children[i], parent.Children[i+1]) {
			i++
			continue
		}

		next := parent.Children[i+1]
		if nextFrag := standaloneFragment(next); nextFrag != nil {
			// chain of attribute lines, keep them together and in source order
			nextFrag.Attributes = append(slices.Clone(frag.Attributes), nextFrag.Attributes...)
		} else {
			mergeAttributes(next, frag.Attributes)
		}
		log.Debug("Attached standalone attributes to following block", zap.Stringer("kind", next.Kind), zap.Stringer("position", frag.Position))
		parent.Children = slices.Delete(parent.Children, i, i+1)
	}

	for _, child := range parent.Children {
		if len(child.Children) > 0 {
			attachStandalone(child, log)
		}
	}
}

// attachAfterBreak attaches standalone attribute line directly following
// thematic break to the break.
func attachAfterBreak(parent *mdast.Node, log *zap.Logger) {
	for i := 1; i < len(parent.Children); {
		prev := parent.Children[i-1]
		frag := standaloneFragment(parent.Children[i])
		if prev.Kind != mdast.KindThematicBreak || frag == nil || !linesAdjacent(prev, parent.Children[i]) {
			i++
			continue
		}

		mergeAttributes(prev, frag.Attributes)
		log.Debug("Attached standalone attributes to preceding thematic break", zap.Stringer("position", frag.Position))
		parent.Children = slices.Delete(parent.Children, i, i+1)
	}

	for _, child := range parent.Children {
		if len(child.Children) > 0 {
			attachAfterBreak(child, log)
		}
	}
}
