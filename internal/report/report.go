// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Format names an output encoding.
type Format string

const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatBibTeX Format = "bibtex"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatBibTeX}

// ErrUnknownFormat indicates an output format not in Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Document is the machine-readable output: the report plus its summary.
type Document struct {
	types.VerificationReport `yaml:",inline"`
	Summary                  Summary `json:"summary" yaml:"summary"`
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *types.VerificationReport, f Format, cfg types.ReportConfig) error {
	switch f {
	case FormatTable, "":
		WriteTable(w, r, cfg)
		return nil
	case FormatJSON:
		return WriteJSON(w, r, cfg)
	case FormatYAML:
		return WriteYAML(w, r, cfg)
	case FormatBibTeX:
		return WriteBibTeX(w, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteJSON writes the report and its summary as indented JSON.
func WriteJSON(w io.Writer, r *types.VerificationReport, cfg types.ReportConfig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{VerificationReport: *r, Summary: Summarize(r, cfg)})
}

// WriteYAML writes the report and its summary as YAML.
func WriteYAML(w io.Writer, r *types.VerificationReport, cfg types.ReportConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(Document{VerificationReport: *r, Summary: Summarize(r, cfg)})
}

// WriteTable writes a human-readable table followed by the summary.
func WriteTable(w io.Writer, r *types.VerificationReport, cfg types.ReportConfig) {
	if len(r.Results) == 0 {
		fmt.Fprintln(w, "No entries to verify.")
		return
	}

	fmt.Fprintf(w, "%-24s  %-10s  %-16s  %-5s  %s\n", "Key", "Status", "Source", "Group", "Details")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i := range r.Results {
		res := &r.Results[i]
		group := ""
		if res.DuplicateGroup > 0 {
			group = fmt.Sprintf("%d", res.DuplicateGroup)
		}
		fmt.Fprintf(w, "%-24s  %-10s  %-16s  %-5s  %s\n",
			truncate(res.Key, 24), res.Status, res.Source, group, truncate(details(res), 60))
		if res.IsArxivPreprint {
			fmt.Fprintf(w, "%-24s  %s\n", "", preprintLine(res))
		}
	}

	s := Summarize(r, cfg)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d entries: %d verified, %d mismatch, %d not found, %d malformed\n",
		s.Total, s.Verified, s.Mismatch, s.NotFound, s.Malformed)
	if s.DuplicateGroups > 0 {
		fmt.Fprintf(w, "Duplicates: %d entries in %d groups\n", s.DuplicateEntries, s.DuplicateGroups)
	}
	fmt.Fprintf(w, "Preprints: %d (%.1f%%), %d with an official version\n",
		s.Preprints, s.PreprintRatio*100, s.OfficialFound)
	if len(s.FieldMismatches) > 0 {
		parts := make([]string, len(s.FieldMismatches))
		for i, fc := range s.FieldMismatches {
			parts[i] = fmt.Sprintf("%s %d", fc.Field, fc.Count)
		}
		fmt.Fprintf(w, "Mismatched fields: %s\n", strings.Join(parts, ", "))
	}
	if r.Cache.Enabled {
		fmt.Fprintf(w, "Cache: %d hits, %d misses, %d stored\n", r.Cache.Hits, r.Cache.Misses, r.Cache.Size)
	}
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func details(res *types.VerificationResult) string {
	switch {
	case len(res.MismatchReasons) > 0:
		return "mismatch: " + strings.Join(res.MismatchReasons, ", ")
	case len(res.Reasons) > 0:
		return strings.Join(res.Reasons, "; ")
	case res.Candidate != nil:
		return res.Candidate.Title
	}
	return ""
}

func preprintLine(res *types.VerificationResult) string {
	if !res.HasOfficialVersion {
		return "arXiv preprint, no official version found"
	}
	line := "published as " + res.OfficialVenue
	if res.OfficialURL != "" {
		line += " " + res.OfficialURL
	}
	return line
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
