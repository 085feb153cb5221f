package section

import (
	"testing"

	"github.com/gensec-labs/labgen/internal/htmltree"
)

func parse(t *testing.T, markup string) *htmltree.Node {
	t.Helper()
	root, err := (htmltree.TreeParser{}).Parse([]byte(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

const stepFragment = `
<google-codelab-step label="Models via APIs" duration="20">
  <h2>3. Models via APIs</h2>
  <ul>
    <li>Run the command to start the notebook</li>
    <li>Take a screenshot of the results for one of the prompts that includes your OdinId</li>
    <li>Explain the difference between the two completions</li>
  </ul>
  <pre><code>
  <ul><li>Submit the flag --verbose</li></ul>
  </code></pre>
</google-codelab-step>`

func TestExtract_ClassifiesDeliverablesInOrder(t *testing.T) {
	sec := Extract(parse(t, stepFragment), 3)
	if sec.Number != 3 {
		t.Fatalf("number must come from probe position, got %d", sec.Number)
	}
	if sec.SourceAnchor != "#2" {
		t.Fatalf("expected anchor #2, got %q", sec.SourceAnchor)
	}
	if sec.Title != "Models via APIs" {
		t.Fatalf("expected label title, got %q", sec.Title)
	}
	if len(sec.Questions) != 2 {
		t.Fatalf("expected 2 deliverables, got %d: %+v", len(sec.Questions), sec.Questions)
	}
	first := sec.Questions[0]
	if !first.RequiresScreenshot || !first.RequiresOdinID {
		t.Fatalf("screenshot/OdinID flags not derived: %+v", first)
	}
	if sec.Questions[1].RequiresScreenshot {
		t.Fatalf("second deliverable must not require a screenshot")
	}
}

func TestExtract_CodeBlockListItemsNeverClassified(t *testing.T) {
	sec := Extract(parse(t, stepFragment), 3)
	for _, q := range sec.Questions {
		if q.Text == "Submit the flag --verbose" {
			t.Fatalf("list item under code block must never reach the classifier output")
		}
	}
}

func TestExtract_HeadingFallbackStripsNumber(t *testing.T) {
	fragment := `<div class="instructions"><h2>2. Prompt Hardening</h2>
	  <ul><li>Describe the jailbreak you attempted</li></ul></div>`
	sec := Extract(parse(t, fragment), 2)
	if sec.Title != "Prompt Hardening" {
		t.Fatalf("expected stripped heading title, got %q", sec.Title)
	}
	if len(sec.Questions) != 1 {
		t.Fatalf("expected 1 deliverable, got %d", len(sec.Questions))
	}
}

func TestExtract_MissingTitleNotFatal(t *testing.T) {
	fragment := `<div><ul><li>Provide the full transcript</li></ul></div>`
	sec := Extract(parse(t, fragment), 1)
	if sec.Title != "" {
		t.Fatalf("expected empty title, got %q", sec.Title)
	}
	if len(sec.Questions) != 1 {
		t.Fatalf("expected extraction to continue without a title")
	}
}

func TestExtract_EmptySectionIsValid(t *testing.T) {
	sec := Extract(parse(t, `<google-codelab-step label="Overview"><p>Read this first.</p></google-codelab-step>`), 1)
	if len(sec.Questions) != 0 {
		t.Fatalf("expected zero questions, got %d", len(sec.Questions))
	}
	if sec.Title != "Overview" || sec.Number != 1 || sec.SourceAnchor != "#0" {
		t.Fatalf("unexpected section: %+v", sec)
	}
}

func TestExtract_EmptyTreeProducesFlaggedSection(t *testing.T) {
	sec := Extract(htmltree.EmptyTree(), 4)
	if sec.Number != 4 || sec.Title != "" || len(sec.Questions) != 0 {
		t.Fatalf("empty tree must still produce a positional section: %+v", sec)
	}
}
