// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"sort"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Comparison is the outcome of comparing one candidate with one entry.
type Comparison struct {
	Match   types.FieldMatch
	Status  types.Status
	Reasons []string

	// Score is title similarity plus author overlap, used to rank candidates.
	Score float64
}

// Comparator applies the matching thresholds. It is a pure function of its
// inputs and safe for concurrent use.
type Comparator struct {
	th     types.Thresholds
	venues *normalize.VenueTable
}

// NewComparator returns a comparator. A nil venue table uses the built-in one.
func NewComparator(th types.Thresholds, venues *normalize.VenueTable) *Comparator {
	if venues == nil {
		venues = normalize.DefaultVenueTable()
	}
	return &Comparator{th: th, venues: venues}
}

// Venues returns the venue table the comparator resolves against.
func (c *Comparator) Venues() *normalize.VenueTable { return c.venues }

// Match scores every field of cand against e.
func (c *Comparator) Match(e *types.ClaimedEntry, cand *types.CandidateMetadata) types.FieldMatch {
	m := types.FieldMatch{
		TitleSimilarity: normalize.TitleSimilarity(e.Title, cand.Title),
		AuthorOverlap:   normalize.AuthorOverlap(e.Authors, cand.Authors),
	}
	if e.Year > 0 && cand.Year > 0 {
		m.YearKnown = true
		m.YearDelta = cand.Year - e.Year
	}
	if e.Venue != "" && cand.Venue != "" {
		m.VenueChecked = true
		m.VenueMatch = c.venues.Compatible(e.Venue, cand.Venue, c.th.VenueSimilarity)
	}
	return m
}

// Compare classifies cand against e. A title below the different-paper
// threshold is NotFound rather than Mismatch.
func (c *Comparator) Compare(e *types.ClaimedEntry, cand *types.CandidateMetadata) Comparison {
	m := c.Match(e, cand)
	cmp := Comparison{Match: m, Score: m.TitleSimilarity + m.AuthorOverlap}

	if m.TitleSimilarity < c.th.DifferentPaper {
		cmp.Status = types.StatusNotFound
		return cmp
	}

	if m.TitleSimilarity < c.th.TitleEquivalent {
		cmp.Reasons = append(cmp.Reasons, types.FieldTitle)
	}
	if len(normalize.Surnames(e.Authors)) > 0 && m.AuthorOverlap < c.th.AuthorOverlap {
		cmp.Reasons = append(cmp.Reasons, types.FieldAuthors)
	}
	if m.YearKnown && !normalize.YearsCompatible(e.Year, cand.Year, c.th.YearTol()) {
		cmp.Reasons = append(cmp.Reasons, types.FieldYear)
	}
	if m.VenueChecked && !m.VenueMatch {
		cmp.Reasons = append(cmp.Reasons, types.FieldVenue)
	}
	sort.Strings(cmp.Reasons)

	if len(cmp.Reasons) == 0 {
		cmp.Status = types.StatusVerified
	} else {
		cmp.Status = types.StatusMismatch
	}
	return cmp
}

// IsOfficial reports whether cand is an acceptable official version of the
// preprint e. It is stricter than Compare: claimed authors must be present,
// both years known and the candidate at most one year later, and the
// candidate must carry a non-arXiv DOI and a known academic venue.
func (c *Comparator) IsOfficial(e *types.ClaimedEntry, cand *types.CandidateMetadata) bool {
	if normalize.TitleSimilarity(e.Title, cand.Title) < c.th.TitleEquivalent {
		return false
	}
	if len(normalize.Surnames(e.Authors)) == 0 ||
		normalize.AuthorOverlap(e.Authors, cand.Authors) < c.th.AuthorOverlap {
		return false
	}
	if e.Year <= 0 || cand.Year <= 0 {
		return false
	}
	if d := cand.Year - e.Year; d != 0 && d != 1 {
		return false
	}
	if normalize.DOI(cand.DOI) == "" || normalize.IsArxivDOI(cand.DOI) {
		return false
	}
	return c.venues.IsKnownAcademic(cand.Venue)
}

// Score returns title similarity plus author overlap.
func (c *Comparator) Score(e *types.ClaimedEntry, cand *types.CandidateMetadata) float64 {
	return normalize.TitleSimilarity(e.Title, cand.Title) + normalize.AuthorOverlap(e.Authors, cand.Authors)
}
