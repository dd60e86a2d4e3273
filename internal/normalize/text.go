// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize provides the pure text functions the matcher relies on:
// LaTeX stripping, diacritic folding, title and author normalization,
// venue canonicalization, identifier parsing, and similarity scores.
// Every function is deterministic and safe for concurrent use.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	latexWrapped  = regexp.MustCompile(`\\(?:textbf|textit|emph|textrm|texttt|textsf|textsc|textup|text|mathrm|mathbf|mathit|mathcal|url|mbox)\s*\{([^}]*)\}`)
	latexHref     = regexp.MustCompile(`\\href\s*\{[^}]*\}\s*\{([^}]*)\}`)
	latexSymAcc   = regexp.MustCompile(`\\['` + "`" + `^"~=.]\s*\{?\s*([A-Za-z])\}?`)
	latexLetAcc   = regexp.MustCompile(`\\[uvHckr]\s*\{\s*([A-Za-z])\s*\}`)
	latexLetters  = regexp.MustCompile(`\\(ss|ae|AE|oe|OE|aa|AA|o|O|l|L|i|j)(?:\{\}|\b)`)
	latexCommand  = regexp.MustCompile(`\\([A-Za-z]+)`)
	latexEscaped  = strings.NewReplacer(`\&`, "&", `\%`, "%", `\$`, "", `\#`, "#", `\_`, "_", "---", "-", "--", "-", "~", " ", "$", "")
	latexBracesRe = regexp.MustCompile(`[{}]`)
)

// StripLatex removes LaTeX markup: formatting commands keep their argument,
// accented letters lose the accent, and remaining braces are dropped.
func StripLatex(s string) string {
	if !strings.ContainsAny(s, `\{}$~`) && !strings.Contains(s, "--") {
		return s
	}
	s = latexHref.ReplaceAllString(s, "$1")
	// Nested wrappers such as \textbf{\emph{x}} need more than one pass.
	for i := 0; i < 3 && latexWrapped.MatchString(s); i++ {
		s = latexWrapped.ReplaceAllString(s, "$1")
	}
	s = latexSymAcc.ReplaceAllString(s, "$1")
	s = latexLetAcc.ReplaceAllString(s, "$1")
	s = latexLetters.ReplaceAllString(s, "$1")
	s = latexEscaped.Replace(s)
	s = latexCommand.ReplaceAllString(s, "$1")
	s = latexBracesRe.ReplaceAllString(s, "")
	return s
}

// foldSpecial covers letters that do not decompose into base + mark.
var foldSpecial = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
	"ı", "i", "þ", "th", "ð", "d",
)

// Fold strips diacritics, mapping "Gödel" to "Godel" and "Łukasz" to "Lukasz".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return foldSpecial.Replace(out)
}

// Tokens lowercases and folds s, then splits it on every rune that is not
// a letter or digit.
func Tokens(s string) []string {
	s = strings.ToLower(Fold(StripLatex(s)))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Text returns the normalized space-joined token form of s.
func Text(s string) string {
	return strings.Join(Tokens(s), " ")
}

// lettersOnly drops every rune that is not a letter.
func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
