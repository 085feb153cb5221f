// Package render emits answer-template documents from an assembled Lab.
// Renderers consume only the final Lab value; no extraction logic runs
// here. Supported formats: Markdown, standalone HTML, and PDF.
package render

import (
	"fmt"
	"strings"

	"github.com/gensec-labs/labgen/internal/model"
)

// Renderer converts an assembled Lab into one output document.
type Renderer interface {
	Render(lab *model.Lab) ([]byte, error)
	// Extension returns the file extension including the dot.
	Extension() string
}

// ForFormat maps a user-facing format name to a renderer.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return Markdown{}, nil
	case "html":
		return HTML{}, nil
	case "pdf":
		return PDF{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected md, html, or pdf)", format)
}

// noDeliverablesMarker makes empty sections explicit in every format; a
// section without tasks still belongs in the submitted document.
const noDeliverablesMarker = "No deliverables in this section."

const answerPlaceholder = "Answer:"
