// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citecheck/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.CandidateMetadata {
	return []types.CandidateMetadata{
		{
			Title:   "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding",
			Authors: []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova"},
			Year:    2019,
			Venue:   "NAACL",
			DOI:     "https://doi.org/10.18653/v1/N19-1423",
			ArxivID: "1810.04805v2",
		},
		{
			Title:   "Deep Residual Learning for Image Recognition",
			Authors: []string{"Kaiming He", "Xiangyu Zhang"},
			Year:    2016,
			Venue:   "CVPR",
		},
		{Title: "  "},
	}
}

func TestImportAndCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sum, err := s.Import(ctx, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Added: 2, Skipped: 1}, sum)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Re-importing upserts by identity.
	_, err = s.Import(ctx, sampleRecords())
	require.NoError(t, err)
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLookupByIdentifiers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Import(ctx, sampleRecords())
	require.NoError(t, err)

	got, err := s.ByDOI(ctx, "10.18653/V1/N19-1423")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.SourceLocal, got[0].Source)
	assert.Equal(t, "10.18653/v1/n19-1423", got[0].DOI)
	assert.Equal(t, "1810.04805", got[0].ArxivID)
	assert.Equal(t, []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova"}, got[0].Authors)
	assert.Equal(t, 2019, got[0].Year)

	got, err = s.ByArxivID(ctx, "arXiv:1810.04805")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.ByDOI(ctx, "10.1/none")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ByDOI(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchTitle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Import(ctx, sampleRecords())
	require.NoError(t, err)

	got, err := s.SearchTitle(ctx, "Deep residual learning for image recognition.", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Deep Residual Learning for Image Recognition", got[0].Title)
	assert.Equal(t, 1.0, got[0].Confidence)

	got, err = s.SearchTitle(ctx, "Quantum gravity", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchTitleExactMatchBeyondScanWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Fillers share the anchor token and sort ahead of the exact record.
	recs := make([]types.CandidateMetadata, 0, scanLimit+11)
	for i := 0; i < scanLimit+10; i++ {
		recs = append(recs, types.CandidateMetadata{
			Title: fmt.Sprintf("Bidirectional Study Number %d", i),
			DOI:   fmt.Sprintf("10.1000/filler-%04d", i),
		})
	}
	recs = append(recs, types.CandidateMetadata{Title: "Pre-training Bidirectional Transformers", Year: 2019})
	_, err := s.Import(ctx, recs)
	require.NoError(t, err)

	got, err := s.SearchTitle(ctx, "Pre-training Bidirectional Transformers", 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Pre-training Bidirectional Transformers", got[0].Title)
	assert.Equal(t, 2019, got[0].Year)
}

func TestFromEntry(t *testing.T) {
	e := types.ClaimedEntry{
		Key:     "devlin2019",
		Title:   "BERT",
		Authors: []string{"Devlin, Jacob"},
		DOI:     "10.48550/arXiv.1810.04805",
	}
	rec := FromEntry(e)
	assert.Equal(t, types.SourceLocal, rec.Source)
	assert.Equal(t, "1810.04805", rec.ArxivID)
	assert.Equal(t, "10.48550/arxiv.1810.04805", rec.DOI)

	e.Identifiers = map[string]string{"arxiv": "2101.00001v2"}
	assert.Equal(t, "2101.00001", FromEntry(e).ArxivID)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
