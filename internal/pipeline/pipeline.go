// Package pipeline is the single entry point collaborators call: resolve
// a lab reference against an index, then hand the matching summary to the
// assembler for a complete Lab.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gensec-labs/labgen/internal/assemble"
	"github.com/gensec-labs/labgen/internal/model"
)

// LabNotFoundError means the reference matched nothing in the index. It
// carries the closest number/id so callers can hint the user.
type LabNotFoundError struct {
	Reference  string
	Suggestion string
}

func (e *LabNotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("lab %q not found (closest match: %s)", e.Reference, e.Suggestion)
	}
	return fmt.Sprintf("lab %q not found", e.Reference)
}

// Resolve matches reference against the index: exact lab number first,
// then exact id, then a URL whose path contains a known id. The index is
// read-only for the duration of the call; on duplicates the first match
// in source order wins.
func Resolve(reference string, ix model.LabIndex) (model.LabSummary, error) {
	ref := strings.TrimSpace(reference)

	for _, s := range ix.Labs {
		if s.Number != "" && s.Number == ref {
			return s, nil
		}
	}
	for _, s := range ix.Labs {
		if s.ID != "" && s.ID == ref {
			return s, nil
		}
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		for _, s := range ix.Labs {
			if s.ID != "" && strings.Contains(u.Path, s.ID) {
				return s, nil
			}
		}
	}
	return model.LabSummary{}, &LabNotFoundError{Reference: ref, Suggestion: closestKnown(ref, ix)}
}

// Facade wires resolution to assembly. FetcherFor supplies the per-lab
// section fetcher, typically a memoizing wrapper over the transport.
type Facade struct {
	Assembler  *assemble.Assembler
	FetcherFor func(summary model.LabSummary) assemble.SectionFetcher
}

// BuildLab resolves reference and assembles the complete Lab.
func (f *Facade) BuildLab(ctx context.Context, reference string, ix model.LabIndex) (*model.Lab, error) {
	summary, err := Resolve(reference, ix)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("lab", summary.ID).Str("reference", reference).Msg("resolved lab reference")
	return f.Assembler.Assemble(ctx, summary, f.FetcherFor(summary))
}

// closestKnown returns the number or id with the smallest edit distance
// to the failed reference.
func closestKnown(ref string, ix model.LabIndex) string {
	best, bestDist := "", -1
	consider := func(candidate string) {
		if candidate == "" {
			return
		}
		d := editDistance(strings.ToLower(ref), strings.ToLower(candidate))
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	for _, s := range ix.Labs {
		consider(s.Number)
		consider(s.ID)
	}
	return best
}

// editDistance is plain Levenshtein over runes; references and ids are
// short, so the quadratic table is fine.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
