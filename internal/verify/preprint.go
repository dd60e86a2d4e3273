// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"net/url"
	"strings"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// officialHosts are publisher and proceedings hosts accepted as an
// official landing page when the DOI is not usable.
var officialHosts = []string{
	"aclanthology.org",
	"openaccess.thecvf.com",
	"proceedings.neurips.cc",
	"proceedings.mlr.press",
	"openreview.net",
	"dl.acm.org",
	"ieeexplore.ieee.org",
	"link.springer.com",
}

// EntryArxivID returns the arXiv id an entry carries, looking at its
// identifiers, DOI, URL, notes, and venue in that order.
func EntryArxivID(e *types.ClaimedEntry) string {
	if id := normalize.ArxivID(e.Identifier("arxiv")); id != "" {
		return id
	}
	if normalize.IsArxivDOI(e.DOI) {
		if id := normalize.ArxivID(e.DOI); id != "" {
			return id
		}
	}
	if normalize.IsArxivURL(e.URL) {
		if id := normalize.ArxivID(e.URL); id != "" {
			return id
		}
	}
	if id := normalize.FindArxivID(e.Notes); id != "" {
		return id
	}
	return normalize.FindArxivID(e.Venue)
}

// IsArxivPreprint reports whether e cites an arXiv preprint. A venue that
// resolves to a known academic venue takes precedence over any arXiv
// evidence elsewhere in the entry.
func (c *Comparator) IsArxivPreprint(e *types.ClaimedEntry) bool {
	if e.Venue != "" && c.venues.IsKnownAcademic(e.Venue) {
		return false
	}
	if EntryArxivID(e) != "" || normalize.IsArxivDOI(e.DOI) {
		return true
	}
	if e.Venue != "" && c.venues.IsPreprint(e.Venue) {
		return true
	}
	return normalize.IsArxivURL(e.URL)
}

// arxivURL returns the abstract link for the entry's preprint.
func arxivURL(e *types.ClaimedEntry) string {
	if id := EntryArxivID(e); id != "" {
		return normalize.ArxivURL(id)
	}
	if normalize.IsArxivURL(e.URL) {
		return e.URL
	}
	return ""
}

// officialURL prefers the chosen candidate's DOI link, then a URL on a
// known proceedings host from any of the accepted candidates, then the
// chosen candidate's own URL.
func officialURL(chosen *types.CandidateMetadata, accepted []types.CandidateMetadata) string {
	if normalize.ValidDOI(chosen.DOI) {
		return normalize.DOIURL(chosen.DOI)
	}
	if isOfficialHost(chosen.URL) {
		return chosen.URL
	}
	for _, c := range accepted {
		if isOfficialHost(c.URL) {
			return c.URL
		}
	}
	return chosen.URL
}

func isOfficialHost(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range officialHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
