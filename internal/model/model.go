// Package model defines the immutable value types produced by the
// extraction pipeline: lab summaries from the course index, and fully
// assembled labs with their sections and classified questions.
//
// Values are copied forward, never shared: a LabIndex owns its summaries,
// a Lab owns its sections, a Section owns its questions. All types are
// JSON round-trippable so the cache can persist them.
package model

import "time"

// Question is a single deliverable task extracted from a section bullet.
type Question struct {
	Text               string `json:"text"`
	RequiresScreenshot bool   `json:"requires_screenshot"`
	RequiresOdinID     bool   `json:"requires_odinid"`
}

// Section is one positional sub-unit of a lab. Number is 1-based and
// reflects probe position, not any number embedded in the heading text.
// Title may be empty when heading extraction failed; that is not an error.
type Section struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Questions    []Question `json:"questions"`
	SourceAnchor string     `json:"source_anchor"`
}

// ScreenshotCount returns how many questions ask for a screenshot.
func (s Section) ScreenshotCount() int {
	n := 0
	for _, q := range s.Questions {
		if q.RequiresScreenshot {
			n++
		}
	}
	return n
}

// OdinIDCount returns how many questions ask for the student's OdinID.
func (s Section) OdinIDCount() int {
	n := 0
	for _, q := range s.Questions {
		if q.RequiresOdinID {
			n++
		}
	}
	return n
}

// LabSummary is one entry of the course index page. Identity is ID.
type LabSummary struct {
	// Number is the dotted lab number, e.g. "01.3". Empty when neither
	// the card title nor the id slug carried a recognizable number.
	Number string `json:"number"`
	// ID is the opaque lab slug, e.g. "G01.3_ProgramModel".
	ID    string `json:"id"`
	Title string `json:"title"`
	// URL is absolute, already resolved against the course root.
	URL string `json:"url"`
	// DurationMinutes is nil when the card carried no parseable duration.
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	Description     string `json:"description,omitempty"`
}

// Lab is a fully assembled lab. Once built it is self-describing and
// immutable; Sections is complete, never lazy or partial.
type Lab struct {
	Number   string    `json:"number"`
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Sections []Section `json:"sections"`
}

// TotalQuestions returns the question count across all sections.
func (l Lab) TotalQuestions() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Questions)
	}
	return n
}

// TotalScreenshots returns the screenshot-requiring count across sections.
func (l Lab) TotalScreenshots() int {
	n := 0
	for _, s := range l.Sections {
		n += s.ScreenshotCount()
	}
	return n
}

// SectionURL returns the direct link to a section, lab URL plus anchor.
func (l Lab) SectionURL(s Section) string {
	if s.SourceAnchor == "" {
		return l.URL
	}
	return l.URL + s.SourceAnchor
}

// LabIndex is the parsed course index page. A refresh produces a new
// value; an index is never mutated in place.
type LabIndex struct {
	Labs      []LabSummary `json:"labs"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// SortedByNumber returns a copy of the summaries ordered by lab number.
// The receiver keeps its source-page order.
func (ix LabIndex) SortedByNumber() []LabSummary {
	out := make([]LabSummary, len(ix.Labs))
	copy(out, ix.Labs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Number < out[j-1].Number; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
