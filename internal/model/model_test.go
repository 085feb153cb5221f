package model

import "testing"

func sampleLab() Lab {
	return Lab{
		Number: "01.3",
		URL:    "https://codelabs.cs.pdx.edu/labs/G01.3_ProgramModel/index.html",
		Sections: []Section{
			{Number: 1, SourceAnchor: "#0"},
			{Number: 2, SourceAnchor: "#1", Questions: []Question{
				{Text: "Take a screenshot of the output", RequiresScreenshot: true},
				{Text: "Describe the difference", RequiresOdinID: true},
			}},
		},
	}
}

func TestLabCounts(t *testing.T) {
	lab := sampleLab()
	if got := lab.TotalQuestions(); got != 2 {
		t.Fatalf("TotalQuestions = %d, want 2", got)
	}
	if got := lab.TotalScreenshots(); got != 1 {
		t.Fatalf("TotalScreenshots = %d, want 1", got)
	}
	if got := lab.Sections[1].OdinIDCount(); got != 1 {
		t.Fatalf("OdinIDCount = %d, want 1", got)
	}
}

func TestSectionURL(t *testing.T) {
	lab := sampleLab()
	want := lab.URL + "#1"
	if got := lab.SectionURL(lab.Sections[1]); got != want {
		t.Fatalf("SectionURL = %q, want %q", got, want)
	}
	if got := lab.SectionURL(Section{}); got != lab.URL {
		t.Fatalf("anchorless section must link to the lab page, got %q", got)
	}
}

func TestSortedByNumber(t *testing.T) {
	ix := LabIndex{Labs: []LabSummary{
		{Number: "02.1", ID: "b"},
		{Number: "01.3", ID: "a"},
		{Number: "10.1", ID: "c"},
	}}
	sorted := ix.SortedByNumber()
	if sorted[0].ID != "a" || sorted[1].ID != "b" || sorted[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", sorted)
	}
	// The receiver keeps source order.
	if ix.Labs[0].ID != "b" {
		t.Fatalf("receiver mutated: %+v", ix.Labs)
	}
}
