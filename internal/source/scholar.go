// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sethgrid/pester"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// scholarBase is the web search results page. Declared as a var so tests
// can substitute an httptest server.
var scholarBase = "https://scholar.google.com/scholar"

// scholarTag matches result-type markers such as "[PDF]" or "[CITATION]".
var scholarTag = regexp.MustCompile(`^\s*(\[[A-Z]+\]\s*)+`)

// ScholarSource is the web-search fallback. It scrapes the HTML result
// page, so it is disabled by default and rate limited conservatively.
type ScholarSource struct {
	base       string
	client     *pester.Client
	limiter    *rate.Limiter
	userAgent  string
	maxResults int
}

// NewScholarSource returns a web-search client. Retries on 429 and 5xx are
// handled by pester with exponential backoff.
func NewScholarSource(cfg types.SourceConfig, hc types.HTTPConfig) *ScholarSource {
	client := pester.New()
	client.Concurrency = 1
	client.MaxRetries = cfg.Retries + 1
	client.Backoff = pester.ExponentialBackoff
	client.Timeout = hc.Timeout
	client.SetRetryOnHTTP429(true)
	return &ScholarSource{
		base:       cmp.Or(cfg.BaseURL, scholarBase),
		client:     client,
		limiter:    newLimiter(cfg.RateInterval),
		userAgent:  hc.UserAgent,
		maxResults: cfg.MaxResults,
	}
}

// Name returns the source identifier.
func (s *ScholarSource) Name() types.SourceID { return types.SourceScholar }

// Fetch runs a quoted title search and parses the result page.
func (s *ScholarSource) Fetch(ctx context.Context, q Query) ([]types.CandidateMetadata, error) {
	if q.Lookup != types.LookupTitle {
		return nil, unsupported(s.Name(), q.Lookup)
	}
	if strings.TrimSpace(q.Title) == "" {
		return nil, fmt.Errorf("empty web search query")
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &Error{Source: s.Name(), Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}

	params := url.Values{"q": {`"` + q.Title + `"`}, "hl": {"en"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &Error{Source: s.Name(), Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Source: s.Name(), StatusCode: resp.StatusCode, Err: ErrRateLimited,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return nil, &Error{Source: s.Name(), StatusCode: resp.StatusCode, Err: ErrUnavailable}
	case resp.StatusCode != http.StatusOK:
		return nil, &Error{Source: s.Name(), StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response")}
	}

	results, err := parseScholarPage(io.LimitReader(resp.Body, maxBodyBytes), q.limit(s.maxResults))
	if err != nil {
		return nil, &Error{Source: s.Name(), Err: err}
	}
	return results, nil
}

// parseScholarPage extracts up to limit results from a search result page.
// A CAPTCHA interstitial is reported as rate limiting.
func parseScholarPage(r io.Reader, limit int) ([]types.CandidateMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing result page: %w", err)
	}
	if doc.Find("#gs_captcha_ccl, #captcha-form").Length() > 0 {
		return nil, ErrRateLimited
	}

	var out []types.CandidateMetadata
	doc.Find("div.gs_ri").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(out) >= limit {
			return false
		}
		heading := sel.Find("h3.gs_rt").First()
		link := heading.Find("a").First()
		title := link.Text()
		if title == "" {
			title = heading.Text()
		}
		title = cleanText(scholarTag.ReplaceAllString(title, ""))
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")

		c := types.CandidateMetadata{
			Source: types.SourceScholar,
			Title:  title,
			URL:    href,
		}
		c.Authors, c.Venue, c.Year = parseScholarByline(sel.Find("div.gs_a").First().Text())
		if normalize.IsArxivURL(href) {
			c.ArxivID = normalize.ArxivID(href)
		}
		out = append(out, c)
		return true
	})
	for i := range out {
		out[i].Confidence = positionScore(i, len(out))
	}
	return out, nil
}

// parseScholarByline splits "A Vaswani, N Shazeer - Advances in neural
// information processing systems, 2017 - proceedings.neurips.cc" into
// authors, venue, and year.
func parseScholarByline(line string) (authors []string, venue string, year int) {
	line = strings.ReplaceAll(line, "\u00a0", " ")
	parts := strings.Split(line, " - ")
	if len(parts) == 0 {
		return nil, "", 0
	}
	for _, a := range strings.Split(parts[0], ",") {
		a = strings.TrimSpace(strings.Trim(strings.TrimSpace(a), "…"))
		if a != "" {
			authors = append(authors, a)
		}
	}
	if len(parts) < 2 {
		return authors, "", 0
	}
	pub := strings.TrimSpace(parts[1])
	year = normalize.ExtractYear(pub)
	if i := strings.LastIndex(pub, ","); i >= 0 && year > 0 {
		venue = strings.TrimSpace(pub[:i])
	} else if year == 0 {
		venue = pub
	}
	venue = strings.TrimSpace(strings.Trim(venue, "…"))
	return authors, venue, year
}
