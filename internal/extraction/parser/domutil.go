package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// Small node-surgery helpers over the x/net/html tree. goquery selections
// drive discovery; mutation happens at the node level so repairs computed
// over a snapshot can be applied without invalidating iteration.

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// replaceWithText swaps n for a plain text node.
func replaceWithText(n *html.Node, text string) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.InsertBefore(textNode(text), n)
	n.Parent.RemoveChild(n)
}

// nodeText renders the visible text of n and its descendants.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			return
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// setNodeText drops n's children and leaves a single text node behind.
func setNodeText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(textNode(text))
}

func isElement(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == name
}

// isSpaceText reports whether n is a whitespace-only text node, the glue
// left between split emphasis spans.
func isSpaceText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

func attrVal(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// contains reports whether ancestor has n among its descendants, n itself
// excluded.
func contains(ancestor, n *html.Node) bool {
	if ancestor == nil || n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// findAll collects descendant elements of n with the given tag name in
// document order.
func findAll(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == name {
			out = append(out, c)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if n != nil {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	return out
}
