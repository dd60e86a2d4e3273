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

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefSource looks up works by DOI or bibliographic title query.
type CrossrefSource struct {
	base       string
	http       *httpClient
	mailto     string
	maxResults int
}

// NewCrossrefSource returns a Crossref client. cfg.Mailto joins the polite pool.
func NewCrossrefSource(cfg types.SourceConfig, hc types.HTTPConfig) *CrossrefSource {
	return &CrossrefSource{
		base:       cmp.Or(cfg.BaseURL, crossrefAPIBase),
		http:       newHTTPClient(types.SourceCrossref, cfg, hc),
		mailto:     cfg.Mailto,
		maxResults: cfg.MaxResults,
	}
}

// Name returns the source identifier.
func (s *CrossrefSource) Name() types.SourceID { return types.SourceCrossref }

// Fetch queries Crossref.
func (s *CrossrefSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
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
		reqURL := s.base + "/" + doi
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}
		body, err := s.http.get(ctx, reqURL, nil)
		if err != nil {
			return nil, err
		}
		var resp struct {
			Message crossrefWork `json:"message"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, s.http.decodeErr(err)
		}
		return []types.CandidateMetadata{resp.Message.candidate(1.0)}, nil

	case types.LookupTitle:
		if strings.TrimSpace(q.Title) == "" {
			return nil, fmt.Errorf("empty Crossref title query")
		}
		params.Set("query.bibliographic", q.Title)
		params.Set("rows", strconv.Itoa(q.limit(s.maxResults)))
		body, err := s.http.get(ctx, s.base+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		var resp struct {
			Message struct {
				Items []crossrefWork `json:"items"`
			} `json:"message"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, s.http.decodeErr(err)
		}
		out := make([]types.CandidateMetadata, 0, len(resp.Message.Items))
		for i, w := range resp.Message.Items {
			out = append(out, w.candidate(positionScore(i, len(resp.Message.Items))))
		}
		return out, nil

	default:
		return nil, unsupported(s.Name(), q.Lookup)
	}
}

// Crossref API JSON structures.
type crossrefWork struct {
	DOI            string           `json:"DOI"`
	URL            string           `json:"URL"`
	Type           string           `json:"type"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Issued         crossrefDate     `json:"issued"`
	PublishedPrint crossrefDate     `json:"published-print"`
	Created        crossrefDate     `json:"created"`
	Event          *struct {
		Name string `json:"name"`
	} `json:"event"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d crossrefDate) year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

func (w crossrefWork) candidate(score float64) types.CandidateMetadata {
	c := types.CandidateMetadata{
		Source:     types.SourceCrossref,
		DOI:        normalize.DOI(w.DOI),
		URL:        w.URL,
		Kind:       w.Type,
		Confidence: score,
	}
	if len(w.Title) > 0 {
		c.Title = cleanText(w.Title[0])
	}
	if len(w.ContainerTitle) > 0 {
		c.Venue = cleanText(w.ContainerTitle[0])
	} else if w.Event != nil {
		c.Venue = cleanText(w.Event.Name)
	}
	for _, a := range w.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name == "" {
			name = a.Name
		}
		if name != "" {
			c.Authors = append(c.Authors, name)
		}
	}
	for _, d := range []crossrefDate{w.Issued, w.PublishedPrint, w.Created} {
		if y := d.year(); y > 0 {
			c.Year = y
			break
		}
	}
	return c
}
