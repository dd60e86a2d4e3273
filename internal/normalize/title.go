// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "on": true, "in": true,
	"for": true, "and": true, "to": true, "with": true, "via": true,
	"at": true, "by": true, "from": true, "is": true,
}

// Title returns the comparison form of a title: LaTeX stripped, folded,
// lowercased, punctuation removed, stopwords dropped. A title made only of
// stopwords keeps them.
func Title(s string) string {
	toks := Tokens(s)
	kept := toks[:0:0]
	for _, t := range toks {
		if !stopwords[t] {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		kept = toks
	}
	return strings.Join(kept, " ")
}

// TitleSimilarity scores two titles in [0, 1] as the mean of the token-set
// Jaccard index and the edit-distance similarity of their normalized forms.
func TitleSimilarity(a, b string) float64 {
	na, nb := Title(a), Title(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	j := Jaccard(strings.Fields(na), strings.Fields(nb))
	e := EditSimilarity(na, nb)
	return 0.5*j + 0.5*e
}

// Jaccard returns |A ∩ B| / |A ∪ B| over the token sets.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// EditSimilarity returns 1 - levenshtein(a, b) / max(len(a), len(b)),
// measured in runes.
func EditSimilarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}
