// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pdiddy/citecheck/internal/httputil"
	"github.com/pdiddy/citecheck/internal/source"
	"github.com/pdiddy/citecheck/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

// mockSource implements source.Source with a call counter.
type mockSource struct {
	name  types.SourceID
	calls atomic.Int32
	fetch func(ctx context.Context, q source.Query) ([]types.CandidateMetadata, error)
}

func (m *mockSource) Name() types.SourceID { return m.name }

func (m *mockSource) Fetch(ctx context.Context, q source.Query) ([]types.CandidateMetadata, error) {
	m.calls.Add(1)
	if m.fetch == nil {
		return nil, nil
	}
	return m.fetch(ctx, q)
}

func newMock(name types.SourceID, fetch func(ctx context.Context, q source.Query) ([]types.CandidateMetadata, error)) *mockSource {
	return &mockSource{name: name, fetch: fetch}
}

// testConfig returns the default configuration with no retries and short
// per-source timeouts.
func testConfig() types.VerifyConfig {
	cfg := types.DefaultVerifyConfig()
	for id, sc := range cfg.Sources {
		sc.Retries = 0
		sc.Timeout = time.Second
		cfg.Sources[id] = sc
	}
	return cfg
}

func rateLimited(src types.SourceID) error {
	return &source.Error{Source: src, StatusCode: 429, Err: source.ErrRateLimited}
}

const bertTitle = "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding"

var bertAuthors = []string{"Devlin, Jacob", "Chang, Ming-Wei", "Lee, Kenton", "Toutanova, Kristina"}

func bertCandidate(src types.SourceID) types.CandidateMetadata {
	return types.CandidateMetadata{
		Source:  src,
		Title:   bertTitle,
		Authors: []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova"},
		Year:    2019,
		Venue:   "NAACL 2019",
		DOI:     "10.18653/v1/N19-1423",
	}
}
