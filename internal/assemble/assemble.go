// Package assemble turns a lab summary into a complete Lab by probing
// section indices sequentially until the fetcher reports the end.
//
// There is no a-priori section count; discovery is "probe until not
// found", bounded by a hard cap so a misbehaving fetcher cannot spin the
// loop forever. Within one lab the probe is strictly sequential, since
// each index only makes sense once the previous one exists.
package assemble

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gensec-labs/labgen/internal/htmltree"
	"github.com/gensec-labs/labgen/internal/model"
	"github.com/gensec-labs/labgen/internal/section"
)

// ErrSectionNotFound is the fetcher's normal termination signal: the
// probed index is past the lab's last section. It is not a failure.
var ErrSectionNotFound = errors.New("section not found")

// SectionFetcher returns the raw markup of the section at the given
// zero-based index, or ErrSectionNotFound past the last section. Any
// other error is a transport-level failure.
type SectionFetcher func(ctx context.Context, index int) ([]byte, error)

// SectionFetchError reports a first-probe failure that was not the
// NotFound termination signal. A lab whose very first probe fails this
// way cannot be told apart from a transport outage, so it is a hard error.
type SectionFetchError struct {
	LabURL string
	Index  int
	Err    error
}

func (e *SectionFetchError) Error() string {
	return fmt.Sprintf("fetching section %d of %s: %v", e.Index, e.LabURL, e.Err)
}

func (e *SectionFetchError) Unwrap() error { return e.Err }

// DefaultMaxSections bounds section discovery when no cap is configured.
const DefaultMaxSections = 50

// Assembler drives the probe loop and the per-fragment extraction.
type Assembler struct {
	Parser htmltree.Parser
	// MaxSections caps the probe loop. Zero means DefaultMaxSections.
	MaxSections int
}

// Assemble builds the complete Lab for the summary. Sections with zero
// questions are retained; a lab whose first probe immediately reports
// NotFound is valid and gets an empty section list. Cancellation is
// checked before every probe.
func (a *Assembler) Assemble(ctx context.Context, summary model.LabSummary, fetch SectionFetcher) (*model.Lab, error) {
	limit := a.MaxSections
	if limit <= 0 {
		limit = DefaultMaxSections
	}

	lab := &model.Lab{
		Number: summary.Number,
		ID:     summary.ID,
		Title:  summary.Title,
		URL:    summary.URL,
	}

	for i := 0; i < limit; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembling %s: %w", summary.ID, err)
		}
		raw, err := fetch(ctx, i)
		if errors.Is(err, ErrSectionNotFound) {
			break
		}
		if err != nil {
			if i == 0 {
				return nil, &SectionFetchError{LabURL: summary.URL, Index: i, Err: err}
			}
			// Later probes: keep what was assembled so far; the result is
			// partial but every retained section is complete.
			log.Warn().Err(err).Str("lab", summary.ID).Int("section", i).
				Msg("section probe failed mid-lab, truncating")
			break
		}

		fragment, perr := a.Parser.Parse(raw)
		if perr != nil {
			log.Warn().Err(perr).Str("lab", summary.ID).Int("section", i).
				Msg("fragment normalization failed, section will be empty")
		}
		lab.Sections = append(lab.Sections, section.Extract(fragment, i+1))

		if i == limit-1 {
			log.Warn().Str("lab", summary.ID).Int("cap", limit).
				Msg("section probe cap reached before NotFound")
		}
	}
	return lab, nil
}
