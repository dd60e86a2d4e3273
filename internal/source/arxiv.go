// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"cmp"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource looks up preprints by arXiv id or title. Records that carry
// a journal reference and DOI expose them as Venue and DOI so the resolver
// can treat them as official-version evidence.
type ArxivSource struct {
	base       string
	http       *httpClient
	maxResults int
}

// NewArxivSource returns an arXiv client using cfg's rate interval.
func NewArxivSource(cfg types.SourceConfig, hc types.HTTPConfig) *ArxivSource {
	return &ArxivSource{
		base:       cmp.Or(cfg.BaseURL, arxivAPIBase),
		http:       newHTTPClient(types.SourceArxiv, cfg, hc),
		maxResults: cfg.MaxResults,
	}
}

// Name returns the source identifier.
func (s *ArxivSource) Name() types.SourceID { return types.SourceArxiv }

// Fetch queries the arXiv API.
func (s *ArxivSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
	params := url.Values{}
	switch q.Lookup {
	case types.LookupArxivID:
		id := normalize.ArxivID(q.ArxivID)
		if id == "" {
			return nil, fmt.Errorf("empty arXiv id")
		}
		params.Set("id_list", id)
		params.Set("max_results", "1")
	case types.LookupTitle:
		title := normalize.Text(q.Title)
		if title == "" {
			return nil, fmt.Errorf("empty arXiv title query")
		}
		params.Set("search_query", `ti:"`+title+`"`)
		params.Set("max_results", strconv.Itoa(q.limit(s.maxResults)))
		params.Set("sortBy", "relevance")
	default:
		return nil, unsupported(s.Name(), q.Lookup)
	}

	body, err := s.http.get(ctx, s.base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, s.http.decodeErr(err)
	}

	var out []types.CandidateMetadata
	for i, e := range feed.Entries {
		id := normalize.ArxivID(e.ID)
		if id == "" {
			// arXiv reports errors as a feed entry with an errors URL.
			continue
		}
		c := types.CandidateMetadata{
			Source:     types.SourceArxiv,
			Title:      cleanText(e.Title),
			ArxivID:    id,
			DOI:        normalize.DOI(e.DOI),
			URL:        normalize.ArxivURL(id),
			Venue:      "arXiv",
			Kind:       "preprint",
			Year:       yearOf(e.Published),
			Confidence: positionScore(i, len(feed.Entries)),
		}
		for _, a := range e.Authors {
			c.Authors = append(c.Authors, cleanText(a.Name))
		}
		if ref := cleanText(e.JournalRef); ref != "" {
			c.Venue = ref
			c.Kind = "journal_ref"
			if y := normalize.ExtractYear(ref); y > 0 {
				c.Year = y
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string        `xml:"id"`
	Title      string        `xml:"title"`
	Published  string        `xml:"published"`
	Authors    []arxivAuthor `xml:"author"`
	JournalRef string        `xml:"http://arxiv.org/schemas/atom journal_ref"`
	DOI        string        `xml:"http://arxiv.org/schemas/atom doi"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
