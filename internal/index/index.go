// Package index extracts the ordered list of lab summaries from the
// normalized course root page.
//
// Lab cards are located by their stable "codelab-card" class; when a page
// variant carries no such class, anchors whose href points into /labs/ are
// used instead. Cards that yield neither a lab number nor an id are
// skipped with a diagnostic rather than aborting the extraction. Document
// order is preserved and duplicates are kept; deciding whether a duplicate
// id is an anomaly is the caller's business.
package index

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gensec-labs/labgen/internal/htmltree"
	"github.com/gensec-labs/labgen/internal/model"
)

// ErrNoLabCards means the root page yielded zero cards. The caller must
// treat the run as failed and must not cache the empty result.
var ErrNoLabCards = errors.New("no lab cards found on course index page")

// MalformedCardError describes one card that could not be reduced to a
// lab summary. It is reported per card; extraction continues past it.
type MalformedCardError struct {
	Href   string
	Reason string
}

func (e *MalformedCardError) Error() string {
	return fmt.Sprintf("malformed lab card (href %q): %s", e.Href, e.Reason)
}

// cardClass is the stable marker the course site puts on lab cards.
const cardClass = "codelab-card"

var (
	labHrefRe  = regexp.MustCompile(`/labs/([^/?#]+)`)
	labIDRe    = regexp.MustCompile(`^G(\d+\.\d+)_`)
	titleRe    = regexp.MustCompile(`^(\d+\.\d+)[:\s-]*(.+)$`)
	durationRe = regexp.MustCompile(`(?i)(\d+)\s*min`)
)

// Extract parses the normalized root page into lab summaries, resolving
// relative hrefs against baseURL. It is deterministic: identical input
// yields an identical ordered sequence.
func Extract(root *htmltree.Node, baseURL string) ([]model.LabSummary, error) {
	cards := root.FindClass(cardClass)
	if len(cards) == 0 {
		cards = root.FindAll(func(n *htmltree.Node) bool {
			return n.Tag == "a" && labHrefRe.MatchString(n.Attr("href"))
		})
	}
	if len(cards) == 0 {
		return nil, ErrNoLabCards
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	var labs []model.LabSummary
	for _, card := range cards {
		summary, err := parseCard(card, base)
		if err != nil {
			log.Warn().Err(err).Msg("skipping lab card")
			continue
		}
		labs = append(labs, summary)
	}
	if len(labs) == 0 {
		return nil, ErrNoLabCards
	}
	return labs, nil
}

func parseCard(card *htmltree.Node, base *url.URL) (model.LabSummary, error) {
	href := card.Attr("href")
	if href == "" || !strings.Contains(href, "/labs/") {
		return model.LabSummary{}, &MalformedCardError{Href: href, Reason: "missing /labs/ href"}
	}

	labURL := href
	if ref, err := url.Parse(href); err == nil {
		labURL = base.ResolveReference(ref).String()
	}

	id := ""
	if m := labHrefRe.FindStringSubmatch(href); m != nil {
		id = m[1]
	}

	number, title := splitCardTitle(cardTitle(card), id)
	if number == "" && id == "" {
		return model.LabSummary{}, &MalformedCardError{Href: href, Reason: "no lab number or id recoverable"}
	}

	return model.LabSummary{
		Number:          number,
		ID:              id,
		Title:           title,
		URL:             labURL,
		DurationMinutes: cardDuration(card),
		Description:     cardDescription(card),
	}, nil
}

// cardTitle looks through the heading variants the site has used over
// time, most specific first.
func cardTitle(card *htmltree.Node) string {
	if h := card.Find("h4"); h != nil {
		return h.FlatText()
	}
	if h := card.Find("h3"); h != nil {
		return h.FlatText()
	}
	for _, div := range card.FindClass("title") {
		if t := div.FlatText(); t != "" {
			return t
		}
	}
	if h := card.Find("h2"); h != nil {
		return h.FlatText()
	}
	return ""
}

// splitCardTitle separates "01.3: Programmatic Model Access" into number
// and title, falling back to the number embedded in the id slug.
func splitCardTitle(titleText, id string) (number, title string) {
	if m := titleRe.FindStringSubmatch(titleText); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if m := labIDRe.FindStringSubmatch(id); m != nil {
		return m[1], titleText
	}
	return "", titleText
}

func cardDuration(card *htmltree.Node) *int {
	text := ""
	for _, span := range card.FindClass("duration") {
		text = span.FlatText()
		break
	}
	if text == "" {
		for _, span := range card.FindAll(func(n *htmltree.Node) bool { return n.Tag == "span" }) {
			if s := span.FlatText(); strings.Contains(strings.ToLower(s), "min") {
				text = s
				break
			}
		}
	}
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil || minutes < 0 {
		return nil
	}
	return &minutes
}

func cardDescription(card *htmltree.Node) string {
	if p := card.Find("p"); p != nil {
		return p.FlatText()
	}
	for _, div := range card.FindClass("description") {
		return div.FlatText()
	}
	return ""
}
