// Package attrs attaches attribute annotations ("{#id .class key=value}")
// found in a Markdown syntax tree to the nodes they belong to.
//
// Tree builder leaves every recognized annotation as a separate node of kind
// attributes. Transform decides for each of them which node receives its
// attributes (preceding inline node, following or preceding block, enclosing
// block) and merges them into that node property bag. Annotations without a
// target are turned back into literal text so nothing is lost. Resulting tree
// never contains attributes nodes.
package attrs

import (
	"time"

	"go.uber.org/zap"

	"mdattr/mdast"
)

// Options controls optional parts of the transformation.
type Options struct {
	// TightLists moves properties of paragraphs inside tight list items to
	// the items.
	TightLists bool
}

// DefaultOptions returns options with every step enabled.
func DefaultOptions() Options {
	return Options{TightLists: true}
}

// Transform resolves all attribute fragments of the tree rooted at root.
// Returned tree is a deep copy, the original remains unchanged. Running
// Transform on its own result changes nothing.
func Transform(root *mdast.Node, opts Options, log *zap.Logger) *mdast.Node {
	if root == nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	start := time.Now()
	result := root.Clone()

	normalizeFragments(result, log)
	resolveFragments(result, log)
	if opts.TightLists {
		promoteTightLists(result, log)
	}

	log.Debug("Attributes resolved", zap.Duration("elapsed", time.Since(start)))
	return result
}
