// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"bytes"
	"cmp"
	"fmt"
	"regexp"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

var bibAuthorSep = regexp.MustCompile(`(?i)\s+and\s+`)

// decodeBibTeX reads @entries from a .bib file. @string macros are
// expanded by the parser; @comment and @preamble blocks are ignored.
func decodeBibTeX(data []byte) ([]types.ClaimedEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	bib, err := bibtex.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing BibTeX: %w", err)
	}
	entries := make([]types.ClaimedEntry, 0, len(bib.Entries))
	for _, be := range bib.Entries {
		fields := make(map[string]string, len(be.Fields))
		for name, v := range be.Fields {
			if v == nil {
				continue
			}
			fields[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(v.String())
		}
		entries = append(entries, bibEntry(strings.TrimSpace(be.CiteName), fields))
	}
	return entries, nil
}

// bibEntry converts the lowercased fields of one BibTeX record.
func bibEntry(key string, f map[string]string) types.ClaimedEntry {
	e := types.ClaimedEntry{
		Key:   key,
		Title: latexText(f["title"]),
		DOI:   stripBraces(f["doi"]),
		URL:   stripBraces(f["url"]),
		Notes: latexText(cmp.Or(f["note"], f["howpublished"])),
	}
	e.Year = normalize.ExtractYear(cmp.Or(f["year"], f["date"]))

	for _, a := range bibAuthorSep.Split(f["author"], -1) {
		a = latexText(a)
		if a == "" || strings.EqualFold(a, "others") {
			continue
		}
		e.Authors = append(e.Authors, a)
	}

	switch {
	case f["journal"] != "":
		e.Venue = latexText(f["journal"])
	case f["journaltitle"] != "":
		e.Venue = latexText(f["journaltitle"])
	case f["booktitle"] != "":
		e.Venue = latexText(f["booktitle"])
	case strings.Contains(strings.ToLower(f["publisher"]), "arxiv"):
		e.Venue = latexText(f["publisher"])
	}

	if id := bibArxivID(f); id != "" {
		e.Identifiers = map[string]string{"arxiv": id}
	}
	return e
}

// bibArxivID finds an arXiv identifier in eprint (unless archivePrefix
// names another archive), arxiv, an arxiv.org url, an arXiv journal
// string, or the note.
func bibArxivID(f map[string]string) string {
	if ep := f["eprint"]; ep != "" {
		archive := strings.ToLower(cmp.Or(f["archiveprefix"], f["eprinttype"]))
		if archive == "" || archive == "arxiv" {
			if id := normalize.ArxivID(ep); id != "" {
				return id
			}
		}
	}
	if id := normalize.ArxivID(f["arxiv"]); id != "" {
		return id
	}
	if u := f["url"]; normalize.IsArxivURL(u) {
		if id := normalize.ArxivID(u); id != "" {
			return id
		}
	}
	if id := normalize.FindArxivID(f["journal"]); id != "" {
		return id
	}
	return normalize.FindArxivID(f["note"])
}

func latexText(s string) string {
	return strings.Join(strings.Fields(normalize.StripLatex(s)), " ")
}

func stripBraces(s string) string {
	return strings.TrimSpace(strings.NewReplacer("{", "", "}", "").Replace(s))
}

// FilterKeys keeps the entries whose key is listed, in input order, and
// reports the listed keys that matched nothing. An empty list keeps all.
func FilterKeys(entries []types.ClaimedEntry, keys []string) (kept []types.ClaimedEntry, missing []string) {
	if len(keys) == 0 {
		return entries, nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			want[k] = false
		}
	}
	for _, e := range entries {
		if _, ok := want[e.Key]; ok {
			kept = append(kept, e)
			want[e.Key] = true
		}
	}
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if found, ok := want[k]; ok && !found {
			missing = append(missing, k)
			want[k] = true
		}
	}
	return kept, missing
}
