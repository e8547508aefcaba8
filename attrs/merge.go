package attrs

import (
	"strings"

	"mdattr/mdast"
)

// languageClassPrefix is what renderers put in front of the fenced code
// language to form class of the code element.
const languageClassPrefix = "language-"

// mergeAttributes folds parsed annotation into node property bag. Class values
// are split into tokens and accumulated, every other key is overwritten.
//
// Once this bag owns class of a fenced code block the renderer no longer adds
// language class itself, so it is injected ahead of the first merged tokens.
func mergeAttributes(node *mdast.Node, attrs mdast.Attributes) {
	if len(attrs) == 0 {
		return
	}

	props := node.Properties()
	for _, a := range attrs {
		if a.Key != mdast.ClassKey {
			props.Set(a.Key, a.Value)
			continue
		}
		if !props.Has(mdast.ClassKey) && node.Kind == mdast.KindCode && node.Lang != "" {
			props.AddClass(languageClassPrefix + node.Lang)
		}
		props.AddClass(strings.Fields(a.Value)...)
	}
}

// mergeProperties moves everything from src into node property bag.
func mergeProperties(node *mdast.Node, src *mdast.Properties) {
	if src.Empty() {
		return
	}
	node.Properties().Merge(src)
}
