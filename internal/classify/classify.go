// Package classify decides whether a bullet of extracted course text is a
// deliverable (a task the student must answer) or an instructional step.
//
// Classification is ordered rule evaluation over two fixed tables:
// exclusion phrases are checked first and always win, then deliverable
// starter verbs, then the OdinID marker. The precedence matters: an
// instructional step may coincidentally begin with a deliverable verb
// ("Create a screenshot tool ...") and must still be excluded.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
)

// exclusionPhrases mark instructional steps. Substring match anywhere in
// the candidate text.
var exclusionPhrases = []string{
	"edit the file",
	"run the command",
	"install",
	"navigate to",
	"click on",
	"open the",
	"create a",
	"copy the",
	"paste the",
	"download",
	"execute the",
	"type the",
	"enter the",
	"set the",
	"configure",
}

// deliverableStarters mark tasks requiring a response. Prefix match only.
var deliverableStarters = []string{
	"take a screenshot",
	"submit",
	"demonstrate",
	"explain",
	"show",
	"include",
	"provide",
	"document",
	"answer",
	"describe",
	"compare",
	"analyze",
	"list",
	"identify",
	"discuss",
	"report",
	"capture",
}

// odinMarkers flag text that must carry the student's identifier.
var odinMarkers = []string{"odinid", "odin id"}

// Result is the classification outcome for one candidate text.
// RequiresScreenshot and RequiresOdinID are derived from the text
// independently of Deliverable; they only matter when Deliverable is true.
type Result struct {
	Deliverable        bool
	RequiresScreenshot bool
	RequiresOdinID     bool
}

// Classify evaluates the rule tables against the trimmed candidate text.
// Empty or whitespace-only text is never a deliverable.
func Classify(text string) Result {
	trimmed := strings.TrimSpace(text)
	// Caser is stateful, so fold per call rather than sharing one.
	folded := cases.Fold().String(trimmed)

	res := Result{
		RequiresScreenshot: strings.Contains(folded, "screenshot"),
		RequiresOdinID:     containsAny(folded, odinMarkers),
	}
	if folded == "" {
		return res
	}
	for _, phrase := range exclusionPhrases {
		if strings.Contains(folded, phrase) {
			return res
		}
	}
	for _, starter := range deliverableStarters {
		if strings.HasPrefix(folded, starter) {
			res.Deliverable = true
			return res
		}
	}
	if res.RequiresOdinID {
		res.Deliverable = true
	}
	return res
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
