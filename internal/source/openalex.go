// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so tests
// can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlexSource looks up works by DOI or title search.
type OpenAlexSource struct {
	base       string
	http       *httpClient
	mailto     string
	maxResults int
}

// NewOpenAlexSource returns an OpenAlex client.
func NewOpenAlexSource(cfg types.SourceConfig, hc types.HTTPConfig) *OpenAlexSource {
	return &OpenAlexSource{
		base:       cmp.Or(cfg.BaseURL, openAlexAPIBase),
		http:       newHTTPClient(types.SourceOpenAlex, cfg, hc),
		mailto:     cfg.Mailto,
		maxResults: cfg.MaxResults,
	}
}

// Name returns the source identifier.
func (s *OpenAlexSource) Name() types.SourceID { return types.SourceOpenAlex }

// Fetch queries OpenAlex.
func (s *OpenAlexSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
	params := url.Values{}
	if s.mailto != "" {
		params.Set("mailto", s.mailto)
	}

	switch q.Lookup {
	case types.LookupDOI:
		doi := normalize.DOI(q.DOI)
		if doi == "" {
			return nil, fmt.Errorf("empty DOI")
		}
		reqURL := s.base + "/" + normalize.DOIURL(doi)
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}
		body, err := s.http.get(ctx, reqURL, nil)
		if err != nil {
			return nil, err
		}
		var w openAlexWork
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, s.http.decodeErr(err)
		}
		return []types.CandidateMetadata{w.candidate(1.0)}, nil

	case types.LookupTitle:
		if strings.TrimSpace(q.Title) == "" {
			return nil, fmt.Errorf("empty OpenAlex title query")
		}
		params.Set("search", q.Title)
		params.Set("per-page", strconv.Itoa(q.limit(s.maxResults)))
		body, err := s.http.get(ctx, s.base+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		var resp struct {
			Results []openAlexWork `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, s.http.decodeErr(err)
		}
		out := make([]types.CandidateMetadata, 0, len(resp.Results))
		for i, w := range resp.Results {
			out = append(out, w.candidate(positionScore(i, len(resp.Results))))
		}
		return out, nil

	default:
		return nil, unsupported(s.Name(), q.Lookup)
	}
}

// OpenAlex API JSON structures.
type openAlexWork struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	PublicationYear int    `json:"publication_year"`
	DOI             string `json:"doi"`
	Type            string `json:"type"`
	Authorships     []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PrimaryLocation *struct {
		LandingPageURL string `json:"landing_page_url"`
		Source         *struct {
			DisplayName string `json:"display_name"`
			Type        string `json:"type"`
		} `json:"source"`
	} `json:"primary_location"`
	IDs struct {
		DOI string `json:"doi"`
	} `json:"ids"`
}

func (w openAlexWork) candidate(score float64) types.CandidateMetadata {
	c := types.CandidateMetadata{
		Source:     types.SourceOpenAlex,
		Title:      cleanText(w.DisplayName),
		Year:       w.PublicationYear,
		DOI:        normalize.DOI(w.DOI),
		Kind:       w.Type,
		URL:        w.ID,
		Confidence: score,
	}
	if c.DOI == "" {
		c.DOI = normalize.DOI(w.IDs.DOI)
	}
	if loc := w.PrimaryLocation; loc != nil {
		if loc.LandingPageURL != "" {
			c.URL = loc.LandingPageURL
		}
		if loc.Source != nil {
			c.Venue = cleanText(loc.Source.DisplayName)
		}
	}
	if normalize.IsArxivDOI(c.DOI) {
		c.ArxivID = normalize.ArxivID(c.DOI)
	} else if normalize.IsArxivURL(c.URL) {
		c.ArxivID = normalize.ArxivID(c.URL)
	}
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			c.Authors = append(c.Authors, a.Author.DisplayName)
		}
	}
	return c
}
