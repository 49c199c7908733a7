package chart

import (
	"bytes"
	"strconv"

	"golang.org/x/net/html"
)

const svgNS = "http://www.w3.org/2000/svg"

// el builds an element node from alternating key/value attribute pairs.
func el(tag string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

// textEl builds an element holding a single text node.
func textEl(tag, text string, kv ...string) *html.Node {
	n := el(tag, kv...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func translate(x, y float64) string {
	return "translate(" + px(x) + "," + px(y) + ")"
}

// Render serializes a node tree.
func Render(n *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// FindByID walks the tree depth-first for the element with the given id.
func FindByID(root *html.Node, id string) *html.Node {
	if root.Type == html.ElementNode {
		if v, ok := Attr(root, "id"); ok && v == id {
			return root
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// FindAll collects every element below root for which match returns true.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// HasClass reports whether n carries the CSS class c.
func HasClass(n *html.Node, c string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, f := range bytes.Fields([]byte(v)) {
		if string(f) == c {
			return true
		}
	}
	return false
}
