// Package htmldoc provides a thin node-level view over a parsed HTML tag
// tree. It wraps goquery for selector queries and exposes the raw tree for
// the sibling/text-node traversal the label extractor needs, which goquery's
// element-only selections cannot express.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is an immutable parsed tag tree over one page's markup.
type Document struct {
	q *goquery.Document
}

// Parse builds a Document from raw HTML text.
func Parse(htmlText string) (*Document, error) {
	q, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{q: q}, nil
}

// Find runs a CSS selector query against the document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.q.Find(selector)
}

// Title returns the text of the <title> element, or "".
func (d *Document) Title() string {
	return strings.TrimSpace(d.q.Find("title").First().Text())
}

// MetaDescription returns the content of <meta name="description">, or "".
func (d *Document) MetaDescription() string {
	content, _ := d.q.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// TextNodes returns every text node whose raw content matches the predicate,
// in document order. Script and style contents are skipped.
func (d *Document) TextNodes(match func(string) bool) []*Node {
	var out []*Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode && match(n.Data) {
			out = append(out, &Node{n: n})
		}
		if skipSubtree(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range d.q.Nodes {
		walk(root)
	}
	return out
}

// FirstElement returns the first element, in document order, whose visible
// text matches the predicate. Returns nil when nothing matches.
func (d *Document) FirstElement(match func(text string) bool) *Node {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && match(visibleText(n)) {
			found = n
			return
		}
		if skipSubtree(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range d.q.Nodes {
		walk(root)
	}
	if found == nil {
		return nil
	}
	return &Node{n: found}
}

// ElementsByTag returns all elements with the given tag name in document order.
func (d *Document) ElementsByTag(tag string) []*Node {
	var out []*Node
	d.q.Find(tag).Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			out = append(out, &Node{n: n})
		}
	})
	return out
}

// Node is one node of the tag tree, either an element or a text node.
type Node struct {
	n *html.Node
}

// Wrap exposes a goquery selection node as a Node.
func Wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// IsElement reports whether the node is an element (as opposed to text).
func (nd *Node) IsElement() bool {
	return nd.n.Type == html.ElementNode
}

// TagName returns the element's tag name, or "" for text nodes.
func (nd *Node) TagName() string {
	if nd.n.Type != html.ElementNode {
		return ""
	}
	return nd.n.Data
}

// Parent returns the parent node, or nil at the root.
func (nd *Node) Parent() *Node {
	if nd.n.Parent == nil {
		return nil
	}
	return &Node{n: nd.n.Parent}
}

// Text returns the node's visible text: the trimmed data of a text node, or
// the space-joined visible text of an element's descendants.
func (nd *Node) Text() string {
	if nd.n.Type == html.TextNode {
		return strings.TrimSpace(nd.n.Data)
	}
	return visibleText(nd.n)
}

// FollowingSiblings returns every sibling after this node, text nodes
// included, in document order.
func (nd *Node) FollowingSiblings() []*Node {
	var out []*Node
	for s := nd.n.NextSibling; s != nil; s = s.NextSibling {
		out = append(out, &Node{n: s})
	}
	return out
}

// NextElementSibling returns the next sibling that is an element, or nil.
func (nd *Node) NextElementSibling() *Node {
	for s := nd.n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return &Node{n: s}
		}
	}
	return nil
}

// FirstAnchor returns the href of the first descendant <a> whose href matches
// the predicate. The second return value is false when no anchor matches.
func (nd *Node) FirstAnchor(match func(href string) bool) (string, bool) {
	var href string
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if h, ok := attr(n, "href"); ok && match(h) {
				href = h
				found = true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(nd.n)
	return href, found
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func skipSubtree(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style")
}

// visibleText joins the trimmed text node contents under n with single
// spaces, skipping script and style subtrees.
func visibleText(n *html.Node) string {
	var pieces []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				pieces = append(pieces, t)
			}
			return
		}
		if skipSubtree(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(pieces, " ")
}
