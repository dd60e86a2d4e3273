// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// httpClient is the rate-limited GET helper shared by the JSON and XML sources.
type httpClient struct {
	source    types.SourceID
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func newHTTPClient(src types.SourceID, cfg types.SourceConfig, hc types.HTTPConfig) *httpClient {
	return &httpClient{
		source:    src,
		client:    &http.Client{Timeout: hc.Timeout},
		limiter:   newLimiter(cfg.RateInterval),
		userAgent: hc.UserAgent,
	}
}

// newLimiter allows one request per interval; a zero interval is unlimited.
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// get issues a GET after waiting on the limiter and maps the HTTP status
// onto the source error taxonomy.
func (c *httpClient) get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(0, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(0, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(resp.StatusCode, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err))
	}
	return body, nil
}

func (c *httpClient) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return c.fail(resp.StatusCode, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		e := c.fail(resp.StatusCode, ErrRateLimited)
		e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		return e
	case resp.StatusCode >= 500:
		return c.fail(resp.StatusCode, ErrUnavailable)
	default:
		return c.fail(resp.StatusCode, fmt.Errorf("unexpected response"))
	}
}

func (c *httpClient) fail(status int, err error) *Error {
	return &Error{Source: c.source, StatusCode: status, Err: err}
}

func (c *httpClient) decodeErr(err error) error {
	return c.fail(0, fmt.Errorf("parsing %s response: %w", c.source, err))
}

// parseRetryAfter reads a Retry-After header in seconds or HTTP-date form.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// yearOf extracts a publication year from a source date string such as
// "2019-06-02", "2019-06-02T17:59:58Z", or "June 2019".
func yearOf(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Year()
	}
	return normalize.ExtractYear(s)
}

// cleanText collapses internal whitespace, which several APIs leave in titles.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// positionScore gives earlier results a higher confidence.
func positionScore(i, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return 1.0 - float64(i)/float64(total-1)*0.9
}
