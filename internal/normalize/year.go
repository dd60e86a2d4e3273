// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strconv"
)

var yearPattern = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

// YearsCompatible reports whether |a - b| <= tol. Unknown years (0) are
// compatible with anything.
func YearsCompatible(a, b, tol int) bool {
	if a == 0 || b == 0 {
		return true
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// ExtractYear returns the first plausible four-digit year in s, or 0.
func ExtractYear(s string) int {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}
