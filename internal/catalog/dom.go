package catalog

import (
	"strings"

	"golang.org/x/net/html"
)

// hasClass reports whether the element node carries the given class.
func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// findByClass returns the first element under n (inclusive) carrying the
// class, in document order, or nil.
func findByClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// findAllByClass returns every element under n (inclusive) carrying the
// class, in document order.
func findAllByClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	if hasClass(n, class) {
		found = append(found, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, findAllByClass(c, class)...)
	}
	return found
}

// nodeText concatenates every text node under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// childElementTexts returns the text of each direct child element of n,
// skipping whitespace-only text nodes between them.
func childElementTexts(n *html.Node) []string {
	var texts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			texts = append(texts, nodeText(c))
		}
	}
	return texts
}
