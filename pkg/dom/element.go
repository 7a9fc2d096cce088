package dom

import "strings"

// Element is a node of the element tree.
type Element interface {
	// TagName returns the lower-cased tag name.
	TagName() string
	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)
	// Parent returns the parent element, or nil at the root.
	Parent() Element
}

// Closest returns el or its nearest ancestor with the given tag that carries
// attr. An empty attr matches any element with the tag. It returns nil when
// nothing matches.
func Closest(el Element, tag, attr string) Element {
	for ; el != nil; el = el.Parent() {
		if !strings.EqualFold(el.TagName(), tag) {
			continue
		}
		if attr == "" {
			return el
		}
		if _, ok := el.Attr(attr); ok {
			return el
		}
	}

	return nil
}
