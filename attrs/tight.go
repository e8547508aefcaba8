package attrs

import (
	"go.uber.org/zap"

	"mdattr/mdast"
)

// promoteTightLists moves property bags from paragraphs of tight list items
// to the items. Renderers drop paragraph wrappers of tight lists, so
// properties left on them would never make it to the output.
func promoteTightLists(n *mdast.Node, log *zap.Logger) {
	if n.Kind == mdast.KindList && !n.Spread {
		for _, item := range n.Children {
			if item.Kind != mdast.KindListItem {
				continue
			}
			for _, para := range item.Children {
				if para.Kind != mdast.KindParagraph || para.Props.Empty() {
					continue
				}
				log.Debug("Promoting paragraph properties to tight list item", zap.Strings("keys", para.Props.Keys()), zap.Stringer("position", item.Position))
				mergeProperties(item, para.Props)
				para.Props = nil
			}
		}
	}

	for _, child := range n.Children {
		promoteTightLists(child, log)
	}
}
