// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citecheck engine.
// Covers the claimed-entry input, fetched candidates, per-entry verification
// results, the batch report, and the configuration surface.
package types

// ClaimedEntry is a bibliography record as written by the document's
// author, before verification. The engine never mutates it.
type ClaimedEntry struct {
	// Key is the citation key, unique within one batch.
	Key string `json:"key" yaml:"key"`

	// Title is the claimed title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in citation order ("Last, First" or "First Last").
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the claimed publication year; 0 when not given.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal, booktitle, or proceedings name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// DOI is the claimed DOI in any common notation.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Identifiers holds external identifiers keyed by scheme (e.g. "arxiv").
	Identifiers map[string]string `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`

	// URL is the claimed link to the paper.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Notes is free text from the note/howpublished fields.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Identifier returns the identifier stored under scheme, or "".
func (e *ClaimedEntry) Identifier(scheme string) string {
	if e.Identifiers == nil {
		return ""
	}
	return e.Identifiers[scheme]
}

// SourceID names a supported candidate database.
type SourceID string

const (
	SourceArxiv           SourceID = "arxiv"
	SourceCrossref        SourceID = "crossref"
	SourceDBLP            SourceID = "dblp"
	SourceSemanticScholar SourceID = "semantic_scholar"
	SourceOpenAlex        SourceID = "openalex"
	SourceScholar         SourceID = "scholar"
	SourceLocal           SourceID = "local"
)

// AllSources lists every source identifier in default priority order.
var AllSources = []SourceID{
	SourceArxiv,
	SourceCrossref,
	SourceSemanticScholar,
	SourceDBLP,
	SourceOpenAlex,
	SourceLocal,
	SourceScholar,
}

// CandidateMetadata is one record fetched from one source.
type CandidateMetadata struct {
	// Source identifies the database that returned this record.
	Source SourceID `json:"source" yaml:"source"`

	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year    int      `json:"year,omitempty" yaml:"year,omitempty"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI     string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	ArxivID string   `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// URL is the canonical landing page reported by the source.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Kind is the publication type as the source reports it
	// (e.g. "journal-article", "Conference and Workshop Papers").
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Confidence is the source-reported relevance score, 0 when unavailable.
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}
