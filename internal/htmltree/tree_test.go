package htmltree

import (
	"testing"
)

const samplePage = `<!doctype html>
<html>
  <head><title>Lab Page</title><script>var x = 1;</script></head>
  <body>
    <nav><a href="#0">Setup</a></nav>
    <google-codelab-step label="Setup" duration="10">
      <h2>1. Setup</h2>
      <ul>
        <li class="deliverable">Take a <strong>screenshot</strong> of the output</li>
        <li>Run the command below</li>
      </ul>
    </google-codelab-step>
    <footer>© course staff</footer>
  </body>
</html>`

func TestTreeParser_BuildsSimplifiedTree(t *testing.T) {
	root, err := (TreeParser{}).Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	step := root.Find("google-codelab-step")
	if step == nil {
		t.Fatalf("expected custom element to survive normalization")
	}
	if got := step.Attr("label"); got != "Setup" {
		t.Fatalf("expected label attr, got %q", got)
	}
	h := step.FirstHeading()
	if h == nil || h.FlatText() != "1. Setup" {
		t.Fatalf("expected heading '1. Setup', got %v", h)
	}
	if root.Find("script") != nil {
		t.Fatalf("script content must be dropped")
	}
}

func TestNode_FlatTextSpansInlineMarkup(t *testing.T) {
	root, err := (TreeParser{}).Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	items := root.FindAll(func(n *Node) bool { return n.Tag == "li" })
	if len(items) == 0 {
		t.Fatalf("expected list items")
	}
	var found bool
	for _, li := range items {
		if li.FlatText() == "Take a screenshot of the output" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected flattened text to merge the <strong> fragment")
	}
}

func TestNode_HasClass(t *testing.T) {
	root, err := (TreeParser{}).Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	hits := root.FindClass("deliverable")
	if len(hits) != 1 || hits[0].Tag != "li" {
		t.Fatalf("expected one li with class deliverable, got %d", len(hits))
	}
}

func TestTreeParser_MalformedInputRecovers(t *testing.T) {
	root, err := (TreeParser{}).Parse([]byte("<ul><li>unclosed<li>also unclosed"))
	if err != nil {
		t.Fatalf("recovering parser should not fail: %v", err)
	}
	items := root.FindAll(func(n *Node) bool { return n.Tag == "li" })
	if len(items) != 2 {
		t.Fatalf("expected 2 recovered items, got %d", len(items))
	}
}

func TestQueryParser_PrunesBoilerplate(t *testing.T) {
	root, err := (QueryParser{}).Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Find("nav") != nil || root.Find("footer") != nil {
		t.Fatalf("nav and footer must be pruned")
	}
	// Content is untouched.
	if root.Find("google-codelab-step") == nil {
		t.Fatalf("content step must survive pruning")
	}
}

func TestQueryParser_CustomSelector(t *testing.T) {
	root, err := (QueryParser{PruneSelector: ".deliverable"}).Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(root.FindClass("deliverable")) != 0 {
		t.Fatalf("custom prune selector must be honored")
	}
}
