package attrs

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"mdattr/mdast"
)

var (
	ErrFragmentLeft    = errors.New("attribute fragment left in the tree")
	ErrSideChannelLeft = errors.New("side channel attributes left in the tree")
	ErrLeafChildren    = errors.New("leaf node has children")
)

// Verify checks that the tree is in the shape renderers expect after
// Transform. All problems found are reported, use multierr.Errors to get them
// individually.
func Verify(root *mdast.Node) (err error) {
	mdast.Walk(root, func(n *mdast.Node, _ int) bool {
		switch {
		case n.Kind == mdast.KindAttributes:
			err = multierr.Append(err, fmt.Errorf("%w: %q at %s", ErrFragmentLeft, n.Value, n.Position))
		case len(n.Attributes) > 0:
			err = multierr.Append(err, fmt.Errorf("%w: %s at %s", ErrSideChannelLeft, n.Kind, n.Position))
		}
		if n.Kind.IsLeaf() && len(n.Children) > 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s at %s with %d children", ErrLeafChildren, n.Kind, n.Position, len(n.Children)))
		}
		return true
	})
	return err
}
