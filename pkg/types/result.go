// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Status is the terminal classification of one claimed entry.
type Status string

const (
	StatusVerified  Status = "verified"
	StatusMismatch  Status = "mismatch"
	StatusNotFound  Status = "not_found"
	StatusDuplicate Status = "duplicate"
	StatusMalformed Status = "malformed"
)

// Mismatch reasons name the field that violated its threshold.
const (
	FieldTitle   = "title"
	FieldAuthors = "authors"
	FieldYear    = "year"
	FieldVenue   = "venue"
)

// FieldMatch holds the per-field scores of one candidate against one entry.
type FieldMatch struct {
	// TitleSimilarity is the combined token/edit-distance score in [0, 1].
	TitleSimilarity float64 `json:"title_similarity" yaml:"title_similarity"`

	// AuthorOverlap is |claimed ∩ candidate| / |claimed| over normalized surnames.
	AuthorOverlap float64 `json:"author_overlap" yaml:"author_overlap"`

	// YearDelta is candidate year minus claimed year; meaningful only when YearKnown.
	YearDelta int  `json:"year_delta" yaml:"year_delta"`
	YearKnown bool `json:"year_known" yaml:"year_known"`

	// VenueMatch reports venue equality after normalization; meaningful only when VenueChecked.
	VenueMatch   bool `json:"venue_match" yaml:"venue_match"`
	VenueChecked bool `json:"venue_checked" yaml:"venue_checked"`
}

// VerificationResult is the final record for one claimed entry.
type VerificationResult struct {
	Key    string `json:"key" yaml:"key"`
	Status Status `json:"status" yaml:"status"`

	// Candidate is the winning record, nil when nothing matched.
	Candidate *CandidateMetadata `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	Source    SourceID           `json:"source,omitempty" yaml:"source,omitempty"`
	Match     *FieldMatch        `json:"match,omitempty" yaml:"match,omitempty"`

	// MismatchReasons lists the fields that failed their threshold, sorted.
	MismatchReasons []string `json:"mismatch_reasons,omitempty" yaml:"mismatch_reasons,omitempty"`

	// Reasons carries free-text explanations: source failures, timeouts,
	// malformed input.
	Reasons []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`

	// DuplicateGroup is the 1-based duplicate group id; 0 when the entry
	// has no duplicate in the batch.
	DuplicateGroup int `json:"duplicate_group,omitempty" yaml:"duplicate_group,omitempty"`

	IsArxivPreprint    bool               `json:"is_arxiv_preprint" yaml:"is_arxiv_preprint"`
	HasOfficialVersion bool               `json:"has_official_version" yaml:"has_official_version"`
	OfficialVenue      string             `json:"official_venue,omitempty" yaml:"official_venue,omitempty"`
	ArxivURL           string             `json:"arxiv_url,omitempty" yaml:"arxiv_url,omitempty"`
	OfficialURL        string             `json:"official_url,omitempty" yaml:"official_url,omitempty"`
	OfficialCandidate  *CandidateMetadata `json:"official_candidate,omitempty" yaml:"official_candidate,omitempty"`

	// SourcesQueried lists the sources consulted, in query order.
	SourcesQueried []SourceID `json:"sources_queried,omitempty" yaml:"sources_queried,omitempty"`

	// TimedOut is set when the batch deadline expired before the entry finished.
	TimedOut bool `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
}

// Classification returns StatusDuplicate for members of a duplicate group
// and Status otherwise.
func (r *VerificationResult) Classification() Status {
	if r.DuplicateGroup > 0 {
		return StatusDuplicate
	}
	return r.Status
}

// CacheStats reports query cache usage for one run.
type CacheStats struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	Size    int           `json:"size" yaml:"size"`
	MaxSize int           `json:"max_size" yaml:"max_size"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
	Hits    int64         `json:"hits" yaml:"hits"`
	Misses  int64         `json:"misses" yaml:"misses"`
}

// VerificationReport is the batch output consumed by delivery layers.
type VerificationReport struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	TotalCount         int `json:"total_count" yaml:"total_count"`
	VerifiedCount      int `json:"verified_count" yaml:"verified_count"`
	MismatchCount      int `json:"mismatch_count" yaml:"mismatch_count"`
	NotFoundCount      int `json:"not_found_count" yaml:"not_found_count"`
	MalformedCount     int `json:"malformed_count" yaml:"malformed_count"`
	DuplicateCount     int `json:"duplicate_count" yaml:"duplicate_count"`
	PreprintCount      int `json:"preprint_count" yaml:"preprint_count"`
	OfficialFoundCount int `json:"official_found_count" yaml:"official_found_count"`

	// DuplicateGroups lists member keys per group; index i holds group i+1.
	DuplicateGroups [][]string `json:"duplicate_groups,omitempty" yaml:"duplicate_groups,omitempty"`

	// Results holds one record per input entry, in input order.
	Results []VerificationResult `json:"results" yaml:"results"`

	Cache CacheStats `json:"cache" yaml:"cache"`
}
