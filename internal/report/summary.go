// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a verification report for people and tools:
// a terminal table, JSON, YAML, and BibTeX of the fetched records.
package report

import (
	"fmt"
	"sort"

	"github.com/pdiddy/citecheck/pkg/types"
)

// FieldCount is the number of mismatched entries that failed on one field.
type FieldCount struct {
	Field string `json:"field" yaml:"field"`
	Count int    `json:"count" yaml:"count"`
}

// Summary holds the derived statistics shown under every report.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Verified  int `json:"verified" yaml:"verified"`
	Mismatch  int `json:"mismatch" yaml:"mismatch"`
	NotFound  int `json:"not_found" yaml:"not_found"`
	Malformed int `json:"malformed" yaml:"malformed"`
	TimedOut  int `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`

	DuplicateEntries int `json:"duplicate_entries" yaml:"duplicate_entries"`
	DuplicateGroups  int `json:"duplicate_groups" yaml:"duplicate_groups"`

	Preprints     int     `json:"preprints" yaml:"preprints"`
	PreprintRatio float64 `json:"preprint_ratio" yaml:"preprint_ratio"`
	OfficialFound int     `json:"official_found" yaml:"official_found"`

	// FieldMismatches counts mismatched entries per failing field, ordered
	// by field name.
	FieldMismatches []FieldCount `json:"field_mismatches,omitempty" yaml:"field_mismatches,omitempty"`

	// Warnings carries report-level notices such as a high preprint ratio.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Summarize derives the summary statistics of r. A preprint warning is
// added when the share of preprint entries exceeds the configured
// threshold; a threshold of 0 disables the check.
func Summarize(r *types.VerificationReport, cfg types.ReportConfig) Summary {
	s := Summary{
		Total:            r.TotalCount,
		Verified:         r.VerifiedCount,
		Mismatch:         r.MismatchCount,
		NotFound:         r.NotFoundCount,
		Malformed:        r.MalformedCount,
		DuplicateEntries: r.DuplicateCount,
		DuplicateGroups:  len(r.DuplicateGroups),
		Preprints:        r.PreprintCount,
		OfficialFound:    r.OfficialFoundCount,
	}

	fields := make(map[string]int)
	for i := range r.Results {
		res := &r.Results[i]
		if res.TimedOut {
			s.TimedOut++
		}
		if res.Status != types.StatusMismatch {
			continue
		}
		for _, f := range res.MismatchReasons {
			fields[f]++
		}
	}
	for f, n := range fields {
		s.FieldMismatches = append(s.FieldMismatches, FieldCount{Field: f, Count: n})
	}
	sort.Slice(s.FieldMismatches, func(i, j int) bool {
		return s.FieldMismatches[i].Field < s.FieldMismatches[j].Field
	})

	if s.Total > 0 {
		s.PreprintRatio = float64(s.Preprints) / float64(s.Total)
	}
	if cfg.PreprintWarningThreshold > 0 && s.PreprintRatio > cfg.PreprintWarningThreshold {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"high preprint ratio: %.1f%% of entries cite preprints; prefer official versions where they exist",
			s.PreprintRatio*100))
	}
	if s.TimedOut > 0 {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"%d entries were not finished before the batch deadline", s.TimedOut))
	}
	return s
}
