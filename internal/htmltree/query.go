package htmltree

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// QueryParser builds the same simplified tree as TreeParser but routes
// through goquery so obvious boilerplate can be pruned with a CSS
// selector before the tree is built. Useful on course pages whose nav
// drawers repeat every section link outside the content steps.
type QueryParser struct {
	// PruneSelector removes matching elements before tree construction.
	// Empty means the default boilerplate set.
	PruneSelector string
}

const defaultPrune = "script, style, noscript, iframe, nav, footer"

// Parse implements Parser.
func (p QueryParser) Parse(raw []byte) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return EmptyTree(), err
	}
	sel := p.PruneSelector
	if sel == "" {
		sel = defaultPrune
	}
	doc.Find(sel).Remove()
	if len(doc.Nodes) == 0 {
		return EmptyTree(), nil
	}
	return Build(doc.Nodes[0]), nil
}
