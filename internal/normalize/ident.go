// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

const (
	doiBase      = "https://doi.org/"
	arxivAbsBase = "https://arxiv.org/abs/"

	// arxivDOIPrefix is the DataCite prefix arXiv registers its DOIs under.
	arxivDOIPrefix = "10.48550/arxiv."
)

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

var doiPrefixes = []string{
	"https://doi.org/", "http://doi.org/",
	"https://dx.doi.org/", "http://dx.doi.org/",
	"doi.org/", "dx.doi.org/", "doi:", "doi ",
}

// arXiv identifiers: new style "2304.12345v2", old style "hep-th/9901001".
var (
	arxivNewPattern = regexp.MustCompile(`\b(\d{4}\.\d{4,5})(?:v\d+)?\b`)
	arxivOldPattern = regexp.MustCompile(`\b([a-z][a-z-]*(?:\.[A-Z]{2})?/\d{7})(?:v\d+)?\b`)
)

// DOI returns the lowercased bare form of a DOI, stripping resolver URLs
// and "doi:" prefixes.
func DOI(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range doiPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	return strings.TrimRight(s, ".,;")
}

// ValidDOI reports whether s normalizes to a syntactically valid DOI.
func ValidDOI(s string) bool {
	return doiPattern.MatchString(DOI(s))
}

// IsArxivDOI reports whether the DOI was minted by arXiv.
func IsArxivDOI(s string) bool {
	return strings.HasPrefix(DOI(s), arxivDOIPrefix)
}

// DOIURL returns the resolver link for a DOI.
func DOIURL(s string) string {
	return doiBase + DOI(s)
}

// ArxivID extracts an arXiv identifier without version suffix from an id
// field, an "arXiv:" reference, an arxiv.org URL, or an arXiv DOI.
func ArxivID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if m := arxivNewPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := arxivOldPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// FindArxivID extracts an arXiv identifier from free text, but only when
// the text mentions arXiv.
func FindArxivID(text string) string {
	if !strings.Contains(strings.ToLower(text), "arxiv") {
		return ""
	}
	return ArxivID(text)
}

// IsArxivURL reports whether u points at arxiv.org.
func IsArxivURL(u string) bool {
	return strings.Contains(strings.ToLower(u), "arxiv.org")
}

// ArxivURL returns the abstract page link for an arXiv identifier.
func ArxivURL(id string) string {
	return arxivAbsBase + id
}
