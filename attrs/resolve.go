package attrs

import (
	"slices"

	"go.uber.org/zap"

	"mdattr/mdast"
)

// offsetsAdjacent reports whether fragment starts exactly where prev ends.
// Both points must carry line information and agree on line, column and
// offset. Missing or negative offsets mean not adjacent.
func offsetsAdjacent(prev, frag *mdast.Node) bool {
	if prev.Position == nil || frag.Position == nil {
		return false
	}
	end, start := prev.Position.End, frag.Position.Start
	if !end.Known() || !start.Known() || end.Offset < 0 || start.Offset < 0 {
		return false
	}
	return end.Line == start.Line && end.Column == start.Column && start.Offset-end.Offset == 0
}

// resolveFragments consumes every attribute fragment left under parent. The
// first applicable rule wins:
//
//   - fragment written right after inline node ("*em*{.x}", no space between)
//     goes to that node;
//   - fragment which is the last child of a block goes to the block;
//   - anything else is put back into the text as written.
//
// Children are processed from the end so removals never shift indexes still
// to be visited.
func resolveFragments(parent *mdast.Node, log *zap.Logger) {
	for i := len(parent.Children) - 1; i >= 0; i-- {
		child := parent.Children[i]
		if child.Kind != mdast.KindAttributes {
			if len(child.Children) > 0 {
				resolveFragments(child, log)
			}
			continue
		}

		switch {
		case i > 0 && parent.Children[i-1].Kind.IsInline() && offsetsAdjacent(parent.Children[i-1], child):
			prev := parent.Children[i-1]
			log.Debug("Attaching attributes to preceding inline node", zap.Stringer("kind", prev.Kind), zap.Stringer("position", child.Position))
			mergeAttributes(prev, child.Attributes)
			parent.Children = slices.Delete(parent.Children, i, i+1)

		case parent.Last() == child && !parent.Kind.IsInline():
			log.Debug("Attaching attributes to enclosing block", zap.Stringer("kind", parent.Kind), zap.Stringer("position", child.Position))
			mergeAttributes(parent, child.Attributes)
			parent.Children = slices.Delete(parent.Children, i, i+1)

		default:
			log.Debug("No target for attributes, keeping them as text", zap.String("text", child.Value), zap.Stringer("position", child.Position))
			parent.Children[i] = mdast.Text(child.Value, child.Position)
		}
	}
}
