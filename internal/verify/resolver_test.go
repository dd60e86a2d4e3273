// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citecheck/internal/source"
	"github.com/pdiddy/citecheck/pkg/types"
)

func officialCandidate(venue, doi string, authors []string) types.CandidateMetadata {
	c := bertCandidate(types.SourceDBLP)
	c.Venue = venue
	c.DOI = doi
	if authors != nil {
		c.Authors = authors
	}
	return c
}

func TestPickOfficial(t *testing.T) {
	o := &Orchestrator{cmp: NewComparator(types.DefaultThresholds(), nil)}
	preprint := types.ClaimedEntry{Key: "p", Title: bertTitle, Authors: bertAuthors, Year: 2019}
	threeAuthors := []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee"}

	tests := []struct {
		name     string
		accepted []types.CandidateMetadata
		wantDOI  string
	}{
		{
			name: "journal beats conference",
			accepted: []types.CandidateMetadata{
				officialCandidate("NAACL 2019", "10.1/conf", nil),
				officialCandidate("TACL", "10.1/journal", threeAuthors),
			},
			wantDOI: "10.1/journal",
		},
		{
			name: "conference beats workshop",
			accepted: []types.CandidateMetadata{
				officialCandidate("Workshop on Representation Learning at NAACL 2019", "10.1/ws", nil),
				officialCandidate("NAACL 2019", "10.1/conf", threeAuthors),
			},
			wantDOI: "10.1/conf",
		},
		{
			name: "same kind, higher score wins",
			accepted: []types.CandidateMetadata{
				officialCandidate("NAACL 2019", "10.1/partial", threeAuthors),
				officialCandidate("EMNLP 2019", "10.1/full", nil),
			},
			wantDOI: "10.1/full",
		},
		{
			name: "exact tie keeps the earlier candidate",
			accepted: []types.CandidateMetadata{
				officialCandidate("NAACL 2019", "10.1/first", nil),
				officialCandidate("EMNLP 2019", "10.1/second", nil),
			},
			wantDOI: "10.1/first",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.pickOfficial(&preprint, tt.accepted)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantDOI, got.DOI)
		})
	}
}

func TestResolvePrefersJournalVersion(t *testing.T) {
	dblp := newMock(types.SourceDBLP, func(_ context.Context, q source.Query) ([]types.CandidateMetadata, error) {
		return []types.CandidateMetadata{
			officialCandidate("NAACL 2019", "10.18653/v1/N19-1423", nil),
			officialCandidate("Transactions of the Association for Computational Linguistics", "10.1162/tacl_a_00001", nil),
		}, nil
	})
	entry := types.ClaimedEntry{
		Key:     "p",
		Title:   bertTitle,
		Authors: bertAuthors,
		Year:    2018,
		Venue:   "arXiv preprint",
	}

	report := NewEngine(testConfig(), source.NewRegistry(dblp)).Verify(context.Background(), []types.ClaimedEntry{entry})
	res := findResult(t, report, "p")
	require.True(t, res.HasOfficialVersion)
	assert.Equal(t, "https://doi.org/10.1162/tacl_a_00001", res.OfficialURL)
	assert.Equal(t, int32(1), dblp.calls.Load(), "the resolver reuses the cached title lookup")
}
