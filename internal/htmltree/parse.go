package htmltree

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// TreeParser is the default Parser. It parses with x/net/html, which
// recovers from malformed and partial markup on its own, and builds the
// simplified tree while dropping script, style and comment content.
type TreeParser struct{}

// Parse converts raw markup into a tree rooted at a synthetic "#root"
// node. An unparseable input yields EmptyTree plus the parser error.
func (TreeParser) Parse(raw []byte) (*Node, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil || doc == nil {
		return EmptyTree(), err
	}
	return Build(doc), nil
}

// Build converts an x/net/html node into the simplified tree. Exposed so
// alternate parsers that end up holding *html.Node values (goquery does)
// can share the conversion.
func Build(doc *html.Node) *Node {
	root := EmptyTree()
	appendChildren(root, doc)
	return root
}

var droppedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
}

func appendChildren(parent *Node, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := collapseSpaces(c.Data); text != "" {
				if parent.Text != "" {
					parent.Text += " "
				}
				parent.Text += text
				parent.Children = append(parent.Children, &Node{Tag: "#text", Text: text})
			}
		case html.ElementNode:
			tag := strings.ToLower(c.Data)
			if droppedTags[tag] {
				continue
			}
			child := &Node{Tag: tag}
			for _, a := range c.Attr {
				if child.Attrs == nil {
					child.Attrs = make(map[string]string, len(c.Attr))
				}
				child.Attrs[strings.ToLower(a.Key)] = a.Val
			}
			parent.Children = append(parent.Children, child)
			appendChildren(child, c)
		}
	}
}
