package classify

import "testing"

func TestClassify_DeliverableStarters(t *testing.T) {
	cases := []string{
		"Take a screenshot of the running container",
		"Submit the output of the previous step",
		"Explain why the model refused the request",
		"describe the difference between the two prompts",
		"Compare the responses across temperature settings",
	}
	for _, text := range cases {
		if got := Classify(text); !got.Deliverable {
			t.Errorf("expected deliverable for %q", text)
		}
	}
}

func TestClassify_InstructionalSteps(t *testing.T) {
	cases := []string{
		"Run the command below to start the server",
		"Install the dependencies with pip",
		"Navigate to the settings page",
		"Click on the blue button",
		"Open the terminal and cd into the repo",
		"Copy the API key into your .env file",
	}
	for _, text := range cases {
		if got := Classify(text); got.Deliverable {
			t.Errorf("expected non-deliverable for %q", text)
		}
	}
}

func TestClassify_ExclusionBeatsStarter(t *testing.T) {
	// Starts with "Create a" (exclusion) even though it mentions a
	// screenshot; exclusion must win over everything else.
	got := Classify("Edit the file to create a screenshot config")
	if got.Deliverable {
		t.Fatalf("exclusion phrase must override, got %+v", got)
	}
	got = Classify("Create a screenshot tool and demonstrate it")
	if got.Deliverable {
		t.Fatalf("exclusion phrase must override starter verbs, got %+v", got)
	}
}

func TestClassify_ScreenshotAndOdinID(t *testing.T) {
	got := Classify("Take a screenshot of the results for one of the prompts that includes your OdinId")
	if !got.Deliverable {
		t.Fatalf("expected deliverable, got %+v", got)
	}
	if !got.RequiresScreenshot {
		t.Errorf("expected RequiresScreenshot")
	}
	if !got.RequiresOdinID {
		t.Errorf("expected RequiresOdinID")
	}
}

func TestClassify_OdinIDAloneIsDeliverable(t *testing.T) {
	got := Classify("Your response must contain your Odin ID")
	if !got.Deliverable {
		t.Fatalf("OdinID marker alone should classify as deliverable, got %+v", got)
	}
	if !got.RequiresOdinID {
		t.Errorf("expected RequiresOdinID")
	}
}

func TestClassify_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		got := Classify(text)
		if got.Deliverable || got.RequiresScreenshot || got.RequiresOdinID {
			t.Errorf("empty input %q should classify to zero result, got %+v", text, got)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := Classify("SUBMIT YOUR ANSWERS HERE"); !got.Deliverable {
		t.Errorf("upper-case starter should match, got %+v", got)
	}
	if got := Classify("INSTALL THE PACKAGE"); got.Deliverable {
		t.Errorf("upper-case exclusion should match, got %+v", got)
	}
}

func TestClassify_NeitherTableMatches(t *testing.T) {
	got := Classify("The quick brown fox jumps over the lazy dog")
	if got.Deliverable {
		t.Errorf("unmatched text should be non-deliverable, got %+v", got)
	}
}
