// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// dblpAPIBase is the DBLP publication search endpoint. Declared as a var
// so tests can substitute an httptest server.
var dblpAPIBase = "https://dblp.org/search/publ/api"

// dblpHomonym matches DBLP's numeric author disambiguator ("Wei Wang 0001").
var dblpHomonym = regexp.MustCompile(`\s+\d{4}$`)

// DBLPSource searches DBLP by title.
type DBLPSource struct {
	base       string
	http       *httpClient
	maxResults int
}

// NewDBLPSource returns a DBLP client.
func NewDBLPSource(cfg types.SourceConfig, hc types.HTTPConfig) *DBLPSource {
	return &DBLPSource{
		base:       cmp.Or(cfg.BaseURL, dblpAPIBase),
		http:       newHTTPClient(types.SourceDBLP, cfg, hc),
		maxResults: cfg.MaxResults,
	}
}

// Name returns the source identifier.
func (s *DBLPSource) Name() types.SourceID { return types.SourceDBLP }

// Fetch searches DBLP. Only title lookups are supported.
func (s *DBLPSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
	if q.Lookup != types.LookupTitle {
		return nil, unsupported(s.Name(), q.Lookup)
	}
	if strings.TrimSpace(q.Title) == "" {
		return nil, fmt.Errorf("empty DBLP title query")
	}

	params := url.Values{
		"q":      {q.Title},
		"format": {"json"},
		"h":      {strconv.Itoa(q.limit(s.maxResults))},
	}
	body, err := s.http.get(ctx, s.base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp dblpResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, s.http.decodeErr(err)
	}

	hits := resp.Result.Hits.Hit
	out := make([]types.CandidateMetadata, 0, len(hits))
	for i, h := range hits {
		info := h.Info
		c := types.CandidateMetadata{
			Source:     types.SourceDBLP,
			Title:      strings.TrimSuffix(cleanText(info.Title), "."),
			Venue:      firstString(info.Venue),
			DOI:        normalize.DOI(info.DOI),
			URL:        firstString(info.EE),
			Kind:       info.Type,
			Confidence: positionScore(i, len(hits)),
		}
		if c.URL == "" {
			c.URL = info.URL
		}
		c.Year, _ = strconv.Atoi(info.Year)
		for _, a := range dblpAuthorNames(info.Authors.Author) {
			c.Authors = append(c.Authors, dblpHomonym.ReplaceAllString(a, ""))
		}
		if normalize.IsArxivDOI(c.DOI) {
			c.ArxivID = normalize.ArxivID(c.DOI)
		}
		out = append(out, c)
	}
	return out, nil
}

// DBLP API JSON structures. Several fields are a single value when there
// is one item and an array otherwise.
type dblpResponse struct {
	Result struct {
		Hits struct {
			Hit []struct {
				Info dblpInfo `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type dblpInfo struct {
	Title   string `json:"title"`
	Authors struct {
		Author json.RawMessage `json:"author"`
	} `json:"authors"`
	Venue json.RawMessage `json:"venue"`
	Year  string          `json:"year"`
	Type  string          `json:"type"`
	DOI   string          `json:"doi"`
	EE    json.RawMessage `json:"ee"`
	URL   string          `json:"url"`
}

type dblpAuthor struct {
	Text string `json:"text"`
}

// dblpAuthorNames decodes an author field that is an object, an array of
// objects, a string, or an array of strings.
func dblpAuthorNames(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var many []dblpAuthor
	if err := json.Unmarshal(raw, &many); err == nil {
		names := make([]string, 0, len(many))
		for _, a := range many {
			names = append(names, a.Text)
		}
		return names
	}
	var one dblpAuthor
	if err := json.Unmarshal(raw, &one); err == nil && one.Text != "" {
		return []string{one.Text}
	}
	var strs []string
	if err := json.Unmarshal(raw, &strs); err == nil {
		return strs
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return []string{s}
	}
	return nil
}

// firstString decodes a string-or-array field and returns the first value.
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var strs []string
	if err := json.Unmarshal(raw, &strs); err == nil && len(strs) > 0 {
		return strs[0]
	}
	return ""
}
