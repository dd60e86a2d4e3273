// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// semanticAPIBase is the Semantic Scholar graph paper endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper"

const semanticFields = "title,authors,year,venue,externalIds,url,publicationDate,journal,publicationVenue"

// SemanticScholarSource resolves arXiv ids and DOIs directly and searches
// by title.
type SemanticScholarSource struct {
	base       string
	http       *httpClient
	apiKey     string
	maxResults int
}

// NewSemanticScholarSource returns a Semantic Scholar client. cfg.APIKey is
// sent as x-api-key when set.
func NewSemanticScholarSource(cfg types.SourceConfig, hc types.HTTPConfig) *SemanticScholarSource {
	return &SemanticScholarSource{
		base:       cmp.Or(cfg.BaseURL, semanticAPIBase),
		http:       newHTTPClient(types.SourceSemanticScholar, cfg, hc),
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
	}
}

// Name returns the source identifier.
func (s *SemanticScholarSource) Name() types.SourceID { return types.SourceSemanticScholar }

// Fetch queries Semantic Scholar.
func (s *SemanticScholarSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
	params := url.Values{"fields": {semanticFields}}

	var single bool
	var reqURL string
	switch q.Lookup {
	case types.LookupArxivID:
		id := normalize.ArxivID(q.ArxivID)
		if id == "" {
			return nil, fmt.Errorf("empty arXiv id")
		}
		single = true
		reqURL = s.base + "/arXiv:" + url.PathEscape(id) + "?" + params.Encode()
	case types.LookupDOI:
		doi := normalize.DOI(q.DOI)
		if doi == "" {
			return nil, fmt.Errorf("empty DOI")
		}
		single = true
		reqURL = s.base + "/DOI:" + doi + "?" + params.Encode()
	case types.LookupTitle:
		if strings.TrimSpace(q.Title) == "" {
			return nil, fmt.Errorf("empty Semantic Scholar title query")
		}
		params.Set("query", q.Title)
		params.Set("limit", strconv.Itoa(q.limit(s.maxResults)))
		reqURL = s.base + "/search?" + params.Encode()
	default:
		return nil, unsupported(s.Name(), q.Lookup)
	}

	var header http.Header
	if s.apiKey != "" {
		header = http.Header{"X-Api-Key": {s.apiKey}}
	}
	body, err := s.http.get(ctx, reqURL, header)
	if err != nil {
		return nil, err
	}

	if single {
		var p semanticPaper
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, s.http.decodeErr(err)
		}
		return []types.CandidateMetadata{p.candidate(1.0)}, nil
	}

	var sr struct {
		Data []semanticPaper `json:"data"`
	}
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, s.http.decodeErr(err)
	}
	out := make([]types.CandidateMetadata, 0, len(sr.Data))
	for i, p := range sr.Data {
		out = append(out, p.candidate(positionScore(i, len(sr.Data))))
	}
	return out, nil
}

// Semantic Scholar API JSON structures.
type semanticPaper struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Year            int    `json:"year"`
	Venue           string `json:"venue"`
	URL             string `json:"url"`
	PublicationDate string `json:"publicationDate"`
	ExternalIDs     struct {
		DOI   string `json:"DOI"`
		ArXiv string `json:"ArXiv"`
	} `json:"externalIds"`
	Journal *struct {
		Name string `json:"name"`
	} `json:"journal"`
	PublicationVenue *struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"publicationVenue"`
}

func (p semanticPaper) candidate(score float64) types.CandidateMetadata {
	c := types.CandidateMetadata{
		Source:     types.SourceSemanticScholar,
		Title:      cleanText(p.Title),
		Year:       p.Year,
		Venue:      cleanText(p.Venue),
		DOI:        normalize.DOI(p.ExternalIDs.DOI),
		ArxivID:    normalize.ArxivID(p.ExternalIDs.ArXiv),
		URL:        p.URL,
		Confidence: score,
	}
	if c.Year == 0 {
		c.Year = yearOf(p.PublicationDate)
	}
	if c.Venue == "" && p.Journal != nil {
		c.Venue = cleanText(p.Journal.Name)
	}
	if p.PublicationVenue != nil {
		if c.Venue == "" {
			c.Venue = cleanText(p.PublicationVenue.Name)
		}
		c.Kind = strings.ToLower(p.PublicationVenue.Type)
	}
	for _, a := range p.Authors {
		c.Authors = append(c.Authors, a.Name)
	}
	return c
}
