// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

var bibEscaper = strings.NewReplacer(`\`, `\\`, "{", `\{`, "}", `\}`)

// WriteBibTeX writes one BibTeX entry per entry with a citable fetched
// record: the official version of a resolved preprint, otherwise the
// candidate of a verified entry. Keys are LastnameYear, with a letter
// suffix when two records would collide.
func WriteBibTeX(w io.Writer, r *types.VerificationReport) error {
	used := make(map[string]int)
	first := true
	for i := range r.Results {
		c := citable(&r.Results[i])
		if c == nil {
			continue
		}
		key := BibKey(c.Authors, c.Year)
		if n := used[key]; n > 0 {
			used[key]++
			key += string(rune('a' + n - 1))
		} else {
			used[key] = 1
		}

		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if _, err := io.WriteString(w, BibEntry(key, c)); err != nil {
			return err
		}
	}
	return nil
}

func citable(res *types.VerificationResult) *types.CandidateMetadata {
	if res.HasOfficialVersion && res.OfficialCandidate != nil {
		return res.OfficialCandidate
	}
	if res.Status == types.StatusVerified {
		return res.Candidate
	}
	return nil
}

// BibKey builds a "Devlin2019" style key from the first author's surname
// and the year.
func BibKey(authors []string, year int) string {
	last := ""
	if len(authors) > 0 {
		last = normalize.Surname(authors[0])
	}
	if last == "" {
		last = "ref"
	} else {
		r := []rune(last)
		r[0] = unicode.ToUpper(r[0])
		last = string(r)
	}
	if year <= 0 {
		return last + "nodate"
	}
	return last + strconv.Itoa(year)
}

// BibEntry renders one fetched record as a BibTeX entry.
func BibEntry(key string, c *types.CandidateMetadata) string {
	kind := "misc"
	if c.Venue != "" {
		kind = "article"
	}
	year := "?"
	if c.Year > 0 {
		year = strconv.Itoa(c.Year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", kind, key)
	fmt.Fprintf(&b, "  author = {%s},\n", bibEscaper.Replace(strings.Join(c.Authors, " and ")))
	fmt.Fprintf(&b, "  title = {%s},\n", bibEscaper.Replace(c.Title))
	fmt.Fprintf(&b, "  year = {%s},\n", year)
	if c.Venue != "" {
		fmt.Fprintf(&b, "  journal = {%s},\n", bibEscaper.Replace(c.Venue))
	}
	if c.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", bibEscaper.Replace(normalize.DOI(c.DOI)))
	}
	if c.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", bibEscaper.Replace(c.URL))
	}
	fmt.Fprintf(&b, "  note = {Fetched from %s}\n", c.Source)
	b.WriteString("}\n")
	return b.String()
}
