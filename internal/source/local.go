// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Index is the lookup surface of the local reference library.
type Index interface {
	ByDOI(ctx context.Context, doi string) ([]types.CandidateMetadata, error)
	ByArxivID(ctx context.Context, id string) ([]types.CandidateMetadata, error)
	SearchTitle(ctx context.Context, title string, limit int) ([]types.CandidateMetadata, error)
}

// LocalSource serves candidates from the local reference library.
type LocalSource struct {
	index      Index
	maxResults int
}

// NewLocalSource wraps a library index.
func NewLocalSource(index Index, cfg types.SourceConfig) *LocalSource {
	return &LocalSource{index: index, maxResults: cfg.MaxResults}
}

// Name returns the source identifier.
func (s *LocalSource) Name() types.SourceID { return types.SourceLocal }

// Fetch looks the query up in the library. Library failures are reported
// as unavailable so the orchestrator moves on.
func (s *LocalSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
	var (
		recs []types.CandidateMetadata
		err  error
	)
	switch q.Lookup {
	case types.LookupDOI:
		recs, err = s.index.ByDOI(ctx, q.DOI)
	case types.LookupArxivID:
		recs, err = s.index.ByArxivID(ctx, q.ArxivID)
	case types.LookupTitle:
		recs, err = s.index.SearchTitle(ctx, q.Title, q.limit(s.maxResults))
	default:
		return nil, unsupported(s.Name(), q.Lookup)
	}
	if err != nil {
		return nil, &Error{Source: s.Name(), Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	return recs, nil
}
