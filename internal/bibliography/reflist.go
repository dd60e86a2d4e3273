// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Numbered reference lists as they appear at the end of a paper:
//
//	[1] Smith, A. and Jones, B. Some Title. Venue, 2020.
var (
	refLineRe = regexp.MustCompile(`(?m)^\s*\[(\d+)\]\s+(.+)$`)

	// refAuthorsRe captures a leading author block ("Smith, A. and Jones, B."
	// or "Brown, T. et al.") so the title that follows can be split off.
	refAuthorsRe = regexp.MustCompile(
		`^((?:[A-Z][\p{L}'-]+(?:,\s+[A-Z]\.?(?:\s?[A-Z]\.)*)?(?:,?\s+(?:and|&)\s+|,\s+)?)+(?:\s*et\s+al\.)?)\s*\.?\s+(.+)$`)

	refInitialRe = regexp.MustCompile(`\b([A-Z])\.`)
	refDOIRe     = regexp.MustCompile(`(?i)\b(?:doi:\s*|https?://(?:dx\.)?doi\.org/)?(10\.\d{4,9}/[^\s,;]+)`)
	refURLRe     = regexp.MustCompile(`https?://\S+`)
)

// ParseReferenceList extracts entries from a numbered plain-text reference
// list. When the text has a Markdown "References" or "Bibliography"
// heading, only the lines under it are read. Keys are "ref<N>".
func ParseReferenceList(content string) []types.ClaimedEntry {
	if section := referencesSection(content); section != "" {
		content = section
	}
	var entries []types.ClaimedEntry
	for _, m := range refLineRe.FindAllStringSubmatch(content, -1) {
		entries = append(entries, parseReference("ref"+m[1], strings.TrimSpace(m[2])))
	}
	return entries
}

// referencesSection returns the lines under a references heading, or "".
func referencesSection(content string) string {
	var (
		collecting bool
		lines      []string
	)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			heading := strings.ToLower(strings.TrimLeft(trimmed, "# "))
			if strings.Contains(heading, "references") || strings.Contains(heading, "bibliography") {
				collecting = true
				continue
			}
			if collecting {
				break
			}
		}
		if collecting {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func parseReference(key, raw string) types.ClaimedEntry {
	e := types.ClaimedEntry{Key: key, Notes: raw}

	text := raw
	if m := refDOIRe.FindStringSubmatch(text); m != nil {
		e.DOI = strings.TrimRight(m[1], ".")
		text = strings.Replace(text, m[0], "", 1)
	}
	if u := refURLRe.FindString(text); u != "" {
		e.URL = strings.TrimRight(u, ".,;")
		text = strings.Replace(text, u, "", 1)
	}
	if id := normalize.FindArxivID(raw); id != "" {
		e.Identifiers = map[string]string{"arxiv": id}
		text = strings.Replace(text, id, "", 1)
	}
	e.Year = normalize.ExtractYear(text)

	rest := text
	if m := refAuthorsRe.FindStringSubmatch(text); m != nil && isAuthorBlock(m[1]) {
		e.Authors = splitRefAuthors(strings.TrimRight(m[1], ". "))
		rest = m[2]
	}
	parts := splitSentences(rest)
	if len(parts) > 0 {
		e.Title = parts[0]
	}
	if len(parts) > 1 {
		e.Venue = cleanRefVenue(parts[1])
	}
	return e
}

// isAuthorBlock rejects a lone capitalized word, which is more likely the
// first word of a title than a single author.
func isAuthorBlock(s string) bool {
	return strings.Contains(s, ",") || strings.Contains(s, " and ") ||
		strings.Contains(s, "&") || strings.Contains(s, "et al")
}

// splitRefAuthors splits "Smith, A., Jones, B. and Lee, C." into names.
func splitRefAuthors(s string) []string {
	s = strings.TrimRight(strings.TrimSuffix(strings.TrimRight(s, ". "), "et al"), ", ")
	s = strings.ReplaceAll(s, " & ", " and ")
	var out []string
	for _, chunk := range strings.Split(s, " and ") {
		// "Smith, A., Jones, B." alternates surname and initials.
		fields := strings.Split(chunk, ",")
		for i := 0; i < len(fields); i++ {
			name := strings.TrimSpace(fields[i])
			if name == "" {
				continue
			}
			if i+1 < len(fields) && isInitials(fields[i+1]) {
				name += ", " + strings.TrimSpace(fields[i+1])
				i++
			}
			out = append(out, name)
		}
	}
	return out
}

func isInitials(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, tok := range strings.Fields(s) {
		if !refInitialRe.MatchString(tok) && len(strings.Trim(tok, ".")) > 1 {
			return false
		}
	}
	return true
}

// splitSentences splits at ". " without breaking on initials or "et al.".
func splitSentences(text string) []string {
	safe := strings.ReplaceAll(text, "et al.", "et al\x00")
	safe = strings.ReplaceAll(safe, "e.g.", "e\x00g\x00")
	safe = strings.ReplaceAll(safe, "i.e.", "i\x00e\x00")
	safe = refInitialRe.ReplaceAllString(safe, "${1}\x00")

	var out []string
	for _, p := range strings.Split(safe, ". ") {
		p = strings.ReplaceAll(p, "\x00", ".")
		p = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(p), "."))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cleanRefVenue(s string) string {
	s = strings.TrimSpace(s)
	if y := normalize.ExtractYear(s); y > 0 {
		s = strings.Replace(s, strconv.Itoa(y), "", 1)
	}
	return strings.TrimSpace(strings.TrimRight(s, "., ()"))
}
