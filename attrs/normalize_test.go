package attrs

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"mdattr/mdast"
)

func TestRelocateSideChannel(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("fenced_code_with_language", func(t *testing.T) {
		code := &mdast.Node{Kind: mdast.KindCode, Lang: "js", Value: "let a", Attributes: mdast.Attributes{{Key: "class", Value: "highlight"}}}
		root := node(mdast.KindRoot, nil, code)

		relocateSideChannel(root, log)

		requireClass(t, code, "language-js", "highlight")
		if code.Attributes != nil {
			t.Fatalf("side channel attributes must be removed")
		}
	})

	t.Run("nested_and_multiple_keys", func(t *testing.T) {
		code := &mdast.Node{Kind: mdast.KindCode, Attributes: mdast.Attributes{{Key: "id", Value: "c"}, {Key: "data-x", Value: "1"}}}
		root := node(mdast.KindRoot, nil, node(mdast.KindBlockquote, nil, code))

		relocateSideChannel(root, log)

		requireProp(t, code, "id", "c")
		requireProp(t, code, "data-x", "1")
		if code.Attributes != nil {
			t.Fatalf("side channel attributes must be removed")
		}
	})

	t.Run("fragments_untouched", func(t *testing.T) {
		frag := fragment("{#a}", nil, "id", "a")
		root := node(mdast.KindRoot, nil, node(mdast.KindParagraph, nil, frag))

		relocateSideChannel(root, log)

		if len(frag.Attributes) != 1 || frag.Props != nil {
			t.Fatalf("fragment must be left for resolution")
		}
	})
}

func TestFlattenLeafChildren(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("thematic_break_with_fragments", func(t *testing.T) {
		brk := node(mdast.KindThematicBreak, lines(1, 1),
			fragment("{#a}", nil, "id", "a"),
			fragment("{.b}", nil, "class", "b"),
		)
		root := node(mdast.KindRoot, nil, brk)

		flattenLeafChildren(root, log)

		requireProp(t, brk, "id", "a")
		requireClass(t, brk, "b")
		if brk.Children != nil {
			t.Fatalf("children of thematic break must be removed")
		}
	})

	t.Run("fragments_merged_in_order", func(t *testing.T) {
		brk := node(mdast.KindThematicBreak, nil,
			fragment("{#a}", nil, "id", "a"),
			fragment("{#b}", nil, "id", "b"),
		)
		flattenLeafChildren(node(mdast.KindRoot, nil, brk), log)
		requireProp(t, brk, "id", "b")
	})

	t.Run("empty_children_removed", func(t *testing.T) {
		brk := &mdast.Node{Kind: mdast.KindThematicBreak, Children: []*mdast.Node{}}
		flattenLeafChildren(node(mdast.KindRoot, nil, brk), log)
		if brk.Children != nil || brk.Props != nil {
			t.Fatalf("empty children must be removed without properties")
		}
	})

	t.Run("non_fragment_children_kept", func(t *testing.T) {
		stray := text("stray", nil)
		code := node(mdast.KindCode, nil, stray, fragment("{.x}", nil, "class", "x"))
		flattenLeafChildren(node(mdast.KindRoot, nil, code), log)
		requireClass(t, code, "x")
		if len(code.Children) != 1 || code.Children[0] != stray {
			t.Fatalf("non fragment children of code must stay, got %d", len(code.Children))
		}
		if !errors.Is(Verify(code), ErrLeafChildren) {
			t.Fatalf("leftover children must be reported")
		}
	})

	t.Run("containers_untouched", func(t *testing.T) {
		para := node(mdast.KindParagraph, nil, text("a", nil), fragment("{.x}", nil, "class", "x"))
		root := node(mdast.KindRoot, nil, para)
		flattenLeafChildren(root, log)
		requireKinds(t, para, mdast.KindText, mdast.KindAttributes)
		requireNoProps(t, para)
	})
}

func TestAttachStandalone(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("next_line", func(t *testing.T) {
		heading := node(mdast.KindHeading, lines(2, 2), text("Title", nil))
		root := node(mdast.KindRoot, nil, standalone("{#intro}", 1, "id", "intro"), heading)

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindHeading)
		requireProp(t, heading, "id", "intro")
	})

	t.Run("blank_line_between", func(t *testing.T) {
		heading := node(mdast.KindHeading, lines(3, 3), text("Title", nil))
		root := node(mdast.KindRoot, nil, standalone("{#intro}", 1, "id", "intro"), heading)

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindParagraph, mdast.KindHeading)
		requireNoProps(t, heading)
	})

	t.Run("last_child", func(t *testing.T) {
		para := node(mdast.KindParagraph, lines(1, 1), text("text", nil))
		root := node(mdast.KindRoot, nil, para, standalone("{.x}", 2, "class", "x"))

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindParagraph, mdast.KindParagraph)
		requireNoProps(t, para)
	})

	t.Run("multiline_block", func(t *testing.T) {
		list := node(mdast.KindList, lines(4, 6))
		root := node(mdast.KindRoot, nil,
			node(mdast.KindParagraph, lines(1, 2), text("a\nb", nil)),
			standalone("{.items}", 3, "class", "items"),
			list,
		)

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindParagraph, mdast.KindList)
		requireClass(t, list, "items")
	})

	// Lines are chained instead of letting the second line take the place of
	// the first: both annotations end up on the block, earlier line first.
	t.Run("consecutive_lines", func(t *testing.T) {
		quote := node(mdast.KindBlockquote, lines(3, 3))
		root := node(mdast.KindRoot, nil,
			standalone("{#q}", 1, "id", "q"),
			standalone("{.a}", 2, "class", "a", "id", "r"),
			quote,
		)

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindBlockquote)
		requireProp(t, quote, "id", "r")
		requireClass(t, quote, "a")
	})

	t.Run("nested", func(t *testing.T) {
		inner := node(mdast.KindParagraph, lines(3, 3), text("quoted", nil))
		quote := node(mdast.KindBlockquote, lines(2, 3), standalone("{.q}", 2, "class", "q"), inner)
		root := node(mdast.KindRoot, nil, node(mdast.KindParagraph, lines(1, 1), text("x", nil)), quote)

		attachStandalone(root, log)

		requireKinds(t, quote, mdast.KindParagraph)
		requireClass(t, inner, "q")
	})

	t.Run("paragraph_with_more_content", func(t *testing.T) {
		para := node(mdast.KindParagraph, lines(1, 1), text("a ", nil), fragment("{.x}", lines(1, 1), "class", "x"))
		next := node(mdast.KindParagraph, lines(2, 2), text("b", nil))
		root := node(mdast.KindRoot, nil, para, next)

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindParagraph, mdast.KindParagraph)
		requireNoProps(t, next)
	})

	t.Run("missing_positions", func(t *testing.T) {
		frag := node(mdast.KindParagraph, nil, fragment("{.x}", nil, "class", "x"))
		next := node(mdast.KindParagraph, lines(2, 2), text("b", nil))
		root := node(mdast.KindRoot, nil, frag, next)

		attachStandalone(root, log)

		requireKinds(t, root, mdast.KindParagraph, mdast.KindParagraph)
		requireNoProps(t, next)
	})
}

func TestAttachAfterBreak(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("next_line", func(t *testing.T) {
		brk := node(mdast.KindThematicBreak, lines(2, 2))
		root := node(mdast.KindRoot, nil,
			node(mdast.KindParagraph, lines(1, 1), text("a", nil)),
			brk,
			standalone("{.fancy}", 3, "class", "fancy"),
		)

		attachAfterBreak(root, log)

		requireKinds(t, root, mdast.KindParagraph, mdast.KindThematicBreak)
		requireClass(t, brk, "fancy")
	})

	t.Run("blank_line_between", func(t *testing.T) {
		brk := node(mdast.KindThematicBreak, lines(1, 1))
		root := node(mdast.KindRoot, nil, brk, standalone("{.fancy}", 3, "class", "fancy"))

		attachAfterBreak(root, log)

		requireKinds(t, root, mdast.KindThematicBreak, mdast.KindParagraph)
		requireNoProps(t, brk)
	})

	t.Run("only_one_line_attaches", func(t *testing.T) {
		brk := node(mdast.KindThematicBreak, lines(1, 1))
		root := node(mdast.KindRoot, nil, brk, standalone("{.a}", 2, "class", "a"), standalone("{.b}", 3, "class", "b"))

		attachAfterBreak(root, log)

		requireKinds(t, root, mdast.KindThematicBreak, mdast.KindParagraph)
		requireClass(t, brk, "a")
	})

	t.Run("nested", func(t *testing.T) {
		brk := node(mdast.KindThematicBreak, lines(2, 2))
		item := node(mdast.KindListItem, lines(1, 3), node(mdast.KindParagraph, lines(1, 1), text("a", nil)), brk, standalone("{#hr}", 3, "id", "hr"))
		root := node(mdast.KindRoot, nil, node(mdast.KindList, lines(1, 3), item))

		attachAfterBreak(root, log)

		requireKinds(t, item, mdast.KindParagraph, mdast.KindThematicBreak)
		requireProp(t, brk, "id", "hr")
	})
}
