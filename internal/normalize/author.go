// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "strings"

var nameSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
}

var authorPlaceholders = map[string]bool{
	"others": true, "et al": true, "et al.": true, "and others": true, "etal": true,
}

// Surname returns the normalized family name of an author. It accepts
// "Last, First" and "First Last" forms; initials, generational suffixes,
// and numeric disambiguators (DBLP's "Wei Wang 0001") are skipped.
func Surname(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || authorPlaceholders[strings.ToLower(name)] {
		return ""
	}
	if i := strings.Index(name, ","); i >= 0 {
		if last := lastNameToken(Tokens(name[:i])); last != "" {
			return last
		}
		name = name[i+1:]
	}
	return lastNameToken(Tokens(name))
}

func lastNameToken(toks []string) string {
	for i := len(toks) - 1; i >= 0; i-- {
		t := lettersOnly(toks[i])
		if len(t) <= 1 || nameSuffixes[t] {
			continue
		}
		return t
	}
	return ""
}

// Surnames normalizes a list of author names to their distinct surnames,
// preserving first occurrence order.
func Surnames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		s := Surname(n)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// AuthorOverlap returns |claimed ∩ candidate| / |claimed| over normalized
// surnames. It is 0 when claimed has no usable names.
func AuthorOverlap(claimed, candidate []string) float64 {
	cs := Surnames(claimed)
	if len(cs) == 0 {
		return 0
	}
	return float64(intersect(cs, Surnames(candidate))) / float64(len(cs))
}

// SymmetricOverlap returns |A ∩ B| / min(|A|, |B|), so the relation does
// not depend on argument order. It is 0 when either side is empty.
func SymmetricOverlap(a, b []string) float64 {
	sa, sb := Surnames(a), Surnames(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	return float64(intersect(sa, sb)) / float64(min(len(sa), len(sb)))
}

func intersect(a, b []string) int {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	n := 0
	for _, s := range a {
		if set[s] {
			n++
		}
	}
	return n
}
