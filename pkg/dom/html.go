package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document from r. Malformed markup is repaired the way
// browsers do; only read errors are returned.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse HTML: %w", err)
	}

	return &Document{root: root}, nil
}

// MustParse parses s and panics on error. Intended for tests and fixtures.
func MustParse(s string) *Document {
	doc, err := Parse(strings.NewReader(s))
	if err != nil {
		panic(err)
	}

	return doc
}

// GetElementByID returns the first element whose id attribute is id, or nil.
func (d *Document) GetElementByID(id string) Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if v, ok := attr(n, "id"); ok && v == id {
			found = n

			return false
		}

		return true
	})
	if found == nil {
		return nil
	}

	return node{n: found}
}

// ElementsByTagName returns all elements with the given tag in document order.
func (d *Document) ElementsByTagName(tag string) []Element {
	a := atom.Lookup([]byte(strings.ToLower(tag)))

	var list []Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.DataAtom == a && a != 0 || strings.EqualFold(n.Data, tag)) {
			list = append(list, node{n: n})
		}

		return true
	})

	return list
}

// walk visits element nodes depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}

	return true
}

func attr(n *html.Node, name string) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}

	return "", false
}

// node is the Element view of an *html.Node.
type node struct {
	n *html.Node
}

func (e node) TagName() string { return strings.ToLower(e.n.Data) }

func (e node) Attr(name string) (string, bool) { return attr(e.n, name) }

func (e node) Parent() Element {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return node{n: p}
		}
	}

	return nil
}

// Node returns the underlying *html.Node of an element obtained from a
// Document, or nil for other Element implementations.
func Node(el Element) *html.Node {
	if e, ok := el.(node); ok {
		return e.n
	}

	return nil
}
