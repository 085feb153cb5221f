// Package htmltree normalizes raw page markup into a simplified element
// tree that the extractors traverse. The tree deliberately hides the
// underlying markup parser so it can be swapped without touching any
// extractor: TreeParser builds on golang.org/x/net/html directly, and
// QueryParser routes through goquery to prune boilerplate with CSS
// selectors first.
package htmltree

import "strings"

// Node is one element of the simplified tree. Text runs appear both as
// "#text" children (preserving their position between sibling elements)
// and concatenated on the owning element's Text field for convenience.
type Node struct {
	// Tag is the lower-case element name. The synthetic root uses "#root";
	// text runs use "#text".
	Tag string
	// Text is the element's own direct text content, whitespace-collapsed.
	Text string
	// Attrs holds the element attributes with lower-case keys.
	Attrs map[string]string
	// Children are the element and text children in document order.
	Children []*Node
}

// Parser produces a simplified element tree from raw markup. A failed
// parse returns an empty tree alongside the error so extractors can still
// emit a flagged, partially populated result instead of aborting.
type Parser interface {
	Parse(raw []byte) (*Node, error)
}

// EmptyTree returns the tree a Parser hands back on failure.
func EmptyTree() *Node {
	return &Node{Tag: "#root"}
}

// Attr returns the named attribute or "".
func (n *Node) Attr(name string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[strings.ToLower(name)]
}

// HasClass reports whether the element's class list contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range strings.Fields(n.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// Find returns the first descendant (depth-first, document order) with the
// given tag, or nil. The receiver itself is considered.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if hit := c.Find(tag); hit != nil {
			return hit
		}
	}
	return nil
}

// FindAll returns every node (receiver included) matching pred, in
// document order. Matching nodes' subtrees are still descended, so nested
// matches are all reported.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(cur *Node) {
		if pred(cur) {
			out = append(out, cur)
		}
	})
	return out
}

// FindClass returns every node carrying the given class, in document order.
func (n *Node) FindClass(class string) []*Node {
	return n.FindAll(func(cur *Node) bool { return cur.HasClass(class) })
}

// FirstHeading returns the first h1..h6 descendant, or nil.
func (n *Node) FirstHeading() *Node {
	var hit *Node
	n.walk(func(cur *Node) {
		if hit == nil && isHeading(cur.Tag) {
			hit = cur
		}
	})
	return hit
}

// FlatText returns the whitespace-collapsed text of the node and all its
// descendants, in document order. Only "#text" runs contribute, so text
// interleaved with inline elements keeps its original order.
func (n *Node) FlatText() string {
	var b strings.Builder
	n.walk(func(cur *Node) {
		if cur.Tag != "#text" || cur.Text == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cur.Text)
	})
	return collapseSpaces(b.String())
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}
