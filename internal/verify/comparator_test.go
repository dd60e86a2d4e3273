// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/citecheck/pkg/types"
)

func TestCompare(t *testing.T) {
	claimed := types.ClaimedEntry{
		Key:     "devlin2019",
		Title:   bertTitle,
		Authors: bertAuthors,
		Year:    2019,
		Venue:   "NAACL",
	}

	tests := []struct {
		name    string
		mutate  func(c *types.CandidateMetadata)
		th      func(th *types.Thresholds)
		status  types.Status
		reasons []string
	}{
		{name: "exact match", status: types.StatusVerified},
		{
			name:   "year within tolerance",
			mutate: func(c *types.CandidateMetadata) { c.Year = 2020 },
			status: types.StatusVerified,
		},
		{
			name:    "year outside tolerance",
			mutate:  func(c *types.CandidateMetadata) { c.Year = 2016 },
			status:  types.StatusMismatch,
			reasons: []string{types.FieldYear},
		},
		{
			name:    "exact year mode",
			mutate:  func(c *types.CandidateMetadata) { c.Year = 2020 },
			th:      func(th *types.Thresholds) { th.ExactYear = true },
			status:  types.StatusMismatch,
			reasons: []string{types.FieldYear},
		},
		{
			name:    "authors disagree",
			mutate:  func(c *types.CandidateMetadata) { c.Authors = []string{"Ada Lovelace", "Alan Turing"} },
			status:  types.StatusMismatch,
			reasons: []string{types.FieldAuthors},
		},
		{
			name:    "venue disagrees",
			mutate:  func(c *types.CandidateMetadata) { c.Venue = "ICML" },
			status:  types.StatusMismatch,
			reasons: []string{types.FieldVenue},
		},
		{
			name:   "candidate without venue is not checked",
			mutate: func(c *types.CandidateMetadata) { c.Venue = "" },
			status: types.StatusVerified,
		},
		{
			name: "several fields disagree, reasons sorted",
			mutate: func(c *types.CandidateMetadata) {
				c.Year = 2010
				c.Venue = "CVPR"
				c.Authors = []string{"Someone Else"}
			},
			status:  types.StatusMismatch,
			reasons: []string{types.FieldAuthors, types.FieldVenue, types.FieldYear},
		},
		{
			name:   "different paper",
			mutate: func(c *types.CandidateMetadata) { c.Title = "A Survey of Reinforcement Learning in Robotics" },
			status: types.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := types.DefaultThresholds()
			if tt.th != nil {
				tt.th(&th)
			}
			cand := bertCandidate(types.SourceCrossref)
			if tt.mutate != nil {
				tt.mutate(&cand)
			}
			got := NewComparator(th, nil).Compare(&claimed, &cand)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.reasons, got.Reasons)
		})
	}
}

func TestCompareTitleMismatchNotNotFound(t *testing.T) {
	claimed := types.ClaimedEntry{Key: "k", Title: "Deep Residual Learning for Image Recognition", Authors: []string{"He, Kaiming"}}
	cand := types.CandidateMetadata{Title: "Deep Residual Learning for Image Classification", Authors: []string{"Kaiming He"}}

	got := NewComparator(types.DefaultThresholds(), nil).Compare(&claimed, &cand)
	assert.Less(t, got.Match.TitleSimilarity, 0.95)
	assert.GreaterOrEqual(t, got.Match.TitleSimilarity, 0.5)
	assert.Equal(t, types.StatusMismatch, got.Status)
	assert.Equal(t, []string{types.FieldTitle}, got.Reasons)
}

func TestCompareEmptyClaimedAuthors(t *testing.T) {
	claimed := types.ClaimedEntry{Key: "k", Title: bertTitle, Year: 2019}
	cand := bertCandidate(types.SourceCrossref)

	c := NewComparator(types.DefaultThresholds(), nil)
	assert.Equal(t, types.StatusVerified, c.Compare(&claimed, &cand).Status)
	assert.False(t, c.IsOfficial(&claimed, &cand))
}

// Scenario E: a candidate whose title similarity is far below the
// different-paper threshold is NotFound, never Mismatch.
func TestScenarioDifferentPaperIsNotFound(t *testing.T) {
	claimed := types.ClaimedEntry{
		Key:     "gnn",
		Title:   "Graph Neural Networks for Molecular Property Prediction",
		Authors: []string{"Smith, Jane"},
		Year:    2021,
	}
	cand := types.CandidateMetadata{
		Title:   "A Survey of Reinforcement Learning in Robotics",
		Authors: []string{"Jane Smith"},
		Year:    2021,
	}
	got := NewComparator(types.DefaultThresholds(), nil).Compare(&claimed, &cand)
	assert.Less(t, got.Match.TitleSimilarity, 0.5)
	assert.Equal(t, types.StatusNotFound, got.Status)
	assert.Empty(t, got.Reasons)
}

func TestIsOfficial(t *testing.T) {
	claimed := types.ClaimedEntry{Key: "k", Title: bertTitle, Authors: bertAuthors, Year: 2018}

	tests := []struct {
		name   string
		mutate func(c *types.CandidateMetadata)
		want   bool
	}{
		{name: "published a year later", want: true},
		{name: "same year", mutate: func(c *types.CandidateMetadata) { c.Year = 2018 }, want: true},
		{name: "two years later", mutate: func(c *types.CandidateMetadata) { c.Year = 2020 }},
		{name: "a year earlier", mutate: func(c *types.CandidateMetadata) { c.Year = 2017 }},
		{name: "unknown year", mutate: func(c *types.CandidateMetadata) { c.Year = 0 }},
		{name: "arXiv DOI", mutate: func(c *types.CandidateMetadata) { c.DOI = "10.48550/arXiv.1810.04805" }},
		{name: "no DOI", mutate: func(c *types.CandidateMetadata) { c.DOI = "" }},
		{name: "unknown venue", mutate: func(c *types.CandidateMetadata) { c.Venue = "Blog of Things" }},
		{name: "preprint venue", mutate: func(c *types.CandidateMetadata) { c.Venue = "arXiv preprint" }},
		{name: "low author overlap", mutate: func(c *types.CandidateMetadata) { c.Authors = []string{"Jacob Devlin"} }},
		{name: "title differs", mutate: func(c *types.CandidateMetadata) { c.Title = "BERT for Everything" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := bertCandidate(types.SourceArxiv)
			if tt.mutate != nil {
				tt.mutate(&cand)
			}
			c := NewComparator(types.DefaultThresholds(), nil)
			assert.Equal(t, tt.want, c.IsOfficial(&claimed, &cand))
			// Pure: same inputs, same answer.
			assert.Equal(t, tt.want, c.IsOfficial(&claimed, &cand))
		})
	}
}

func TestIsArxivPreprint(t *testing.T) {
	c := NewComparator(types.DefaultThresholds(), nil)
	tests := []struct {
		name  string
		entry types.ClaimedEntry
		want  bool
	}{
		{"arxiv identifier", types.ClaimedEntry{Identifiers: map[string]string{"arxiv": "2304.12345"}}, true},
		{"arxiv DOI", types.ClaimedEntry{DOI: "10.48550/arXiv.2304.12345"}, true},
		{"arxiv venue", types.ClaimedEntry{Venue: "arXiv preprint arXiv:2304.12345"}, true},
		{"corr venue", types.ClaimedEntry{Venue: "CoRR"}, true},
		{"arxiv url", types.ClaimedEntry{URL: "https://arxiv.org/abs/2304.12345"}, true},
		{"known venue wins over arxiv note", types.ClaimedEntry{Venue: "Proceedings of ACL 2025", Notes: "arXiv:2304.12345"}, false},
		{"journal article", types.ClaimedEntry{Venue: "JMLR", DOI: "10.5555/123"}, false},
		{"nothing", types.ClaimedEntry{Title: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsArxivPreprint(&tt.entry))
		})
	}
}

func TestEntryArxivID(t *testing.T) {
	assert.Equal(t, "2304.12345", EntryArxivID(&types.ClaimedEntry{Identifiers: map[string]string{"arxiv": "2304.12345v2"}}))
	assert.Equal(t, "2304.12345", EntryArxivID(&types.ClaimedEntry{URL: "https://arxiv.org/pdf/2304.12345v1.pdf"}))
	assert.Equal(t, "2304.12345", EntryArxivID(&types.ClaimedEntry{Notes: "Preprint at arXiv:2304.12345"}))
	assert.Equal(t, "", EntryArxivID(&types.ClaimedEntry{Notes: "Version 2304.12345 of the data"}))
}

func TestOfficialURL(t *testing.T) {
	withDOI := types.CandidateMetadata{DOI: "10.18653/v1/N19-1423", URL: "https://aclanthology.org/N19-1423"}
	assert.Equal(t, "https://doi.org/10.18653/v1/n19-1423", officialURL(&withDOI, nil))

	noDOI := types.CandidateMetadata{URL: "https://example.org/paper"}
	other := types.CandidateMetadata{URL: "https://proceedings.neurips.cc/paper/2017/hash/abc"}
	assert.Equal(t, other.URL, officialURL(&noDOI, []types.CandidateMetadata{noDOI, other}))
	assert.Equal(t, noDOI.URL, officialURL(&noDOI, []types.CandidateMetadata{noDOI}))
}
