// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source defines the Candidate Source contract and its variants:
// one client per academic database plus a web-search fallback and a local
// reference library. The verification engine is written against Source
// only and never against a concrete client.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Source fetches candidate records for one normalized query. Each database
// integration implements this interface.
type Source interface {
	Name() types.SourceID
	Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error)
}

// Query is one lookup against one source.
type Query struct {
	Lookup  types.Lookup
	Title   string
	ArxivID string
	DOI     string

	// Limit caps title-search results; sources apply their own default when 0.
	Limit int
}

// Key returns the normalized query string. Two queries with the same Key
// against the same source are the same network request.
func (q Query) Key() string {
	switch q.Lookup {
	case types.LookupArxivID:
		return "arxiv_id:" + strings.ToLower(normalize.ArxivID(q.ArxivID))
	case types.LookupDOI:
		return "doi:" + normalize.DOI(q.DOI)
	default:
		return "title:" + normalize.Title(q.Title)
	}
}

// IsEmpty reports whether the query has nothing to look up.
func (q Query) IsEmpty() bool {
	switch q.Lookup {
	case types.LookupArxivID:
		return normalize.ArxivID(q.ArxivID) == ""
	case types.LookupDOI:
		return normalize.DOI(q.DOI) == ""
	default:
		return normalize.Title(q.Title) == ""
	}
}

func (q Query) limit(def int) int {
	if q.Limit > 0 {
		return q.Limit
	}
	if def > 0 {
		return def
	}
	return 5
}

func unsupported(src types.SourceID, l types.Lookup) error {
	return &Error{Source: src, Err: fmt.Errorf("%w: %s", ErrUnsupported, l)}
}
