// Package section extracts one lab section from a normalized content
// fragment: a best-effort title plus every deliverable bullet, classified
// in document order.
//
// The section number always comes from the caller's probe position, never
// from the heading text. Heading numbering on the course site is free
// text and drifts; probe position is authoritative.
package section

import (
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/gensec-labs/labgen/internal/classify"
	"github.com/gensec-labs/labgen/internal/htmltree"
	"github.com/gensec-labs/labgen/internal/model"
)

var leadingNumberRe = regexp.MustCompile(`^\d+\.\s*`)

// Extract builds the Section for the fragment at the given 1-based index.
// A missing title is flagged but never fatal, and a section with zero
// deliverables is a valid result.
func Extract(fragment *htmltree.Node, expectedIndex int) model.Section {
	sec := model.Section{
		Number:       expectedIndex,
		Title:        extractTitle(fragment),
		SourceAnchor: "#" + strconv.Itoa(expectedIndex-1),
	}
	if sec.Title == "" {
		log.Debug().Int("section", expectedIndex).Msg("section has no recoverable title")
	}

	collectQuestions(fragment, false, &sec)
	return sec
}

// extractTitle prefers the step element's label attribute, then the first
// heading with any leading "N." stripped.
func extractTitle(fragment *htmltree.Node) string {
	if step := fragment.Find("google-codelab-step"); step != nil {
		if label := step.Attr("label"); label != "" {
			return label
		}
	}
	if h := fragment.FirstHeading(); h != nil {
		return leadingNumberRe.ReplaceAllString(h.FlatText(), "")
	}
	return ""
}

// collectQuestions walks the fragment in document order, feeding each list
// item's flattened text to the classifier. List items anywhere under a
// pre or code ancestor are sample command output, not candidates.
func collectQuestions(n *htmltree.Node, inCode bool, sec *model.Section) {
	if n == nil {
		return
	}
	switch n.Tag {
	case "pre", "code":
		inCode = true
	case "li":
		if !inCode {
			if text := n.FlatText(); text != "" {
				if res := classify.Classify(text); res.Deliverable {
					sec.Questions = append(sec.Questions, model.Question{
						Text:               text,
						RequiresScreenshot: res.RequiresScreenshot,
						RequiresOdinID:     res.RequiresOdinID,
					})
				}
			}
		}
	}
	for _, c := range n.Children {
		collectQuestions(c, inCode, sec)
	}
}
