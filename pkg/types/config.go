package types

import "time"

// HTTPConfig holds shared HTTP settings used by sources that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citecheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Thresholds centralizes the matching rules used by the comparator,
// the duplicate detector, and the official-version check.
type Thresholds struct {
	// TitleEquivalent is the similarity at which two titles are the same (0.95).
	TitleEquivalent float64 `json:"title_equivalent" yaml:"title_equivalent" mapstructure:"title_equivalent"`

	// AuthorOverlap is the minimum surname overlap ratio (0.70).
	AuthorOverlap float64 `json:"author_overlap" yaml:"author_overlap" mapstructure:"author_overlap"`

	// YearTolerance is the allowed |Δ| between years (1).
	YearTolerance int `json:"year_tolerance" yaml:"year_tolerance" mapstructure:"year_tolerance"`

	// ExactYear forces a tolerance of 0 for Verified classification.
	ExactYear bool `json:"exact_year" yaml:"exact_year" mapstructure:"exact_year"`

	// DifferentPaper is the title similarity below which a candidate is
	// treated as a different paper rather than a mismatch (0.5).
	DifferentPaper float64 `json:"different_paper" yaml:"different_paper" mapstructure:"different_paper"`

	// VenueSimilarity is the edit-distance similarity at which two
	// unresolved venue strings are equal (0.8).
	VenueSimilarity float64 `json:"venue_similarity" yaml:"venue_similarity" mapstructure:"venue_similarity"`
}

// YearTol returns the tolerance to use for Verified classification.
func (t Thresholds) YearTol() int {
	if t.ExactYear {
		return 0
	}
	return t.YearTolerance
}

// CacheConfig controls the transient query cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
	MaxSize int           `json:"max_size" yaml:"max_size" mapstructure:"max_size"`
}

// Lookup selects how a source is queried.
type Lookup string

const (
	LookupArxivID Lookup = "arxiv_id"
	LookupDOI     Lookup = "doi"
	LookupTitle   Lookup = "title"
)

// StepConfig is one entry of the priority query plan.
type StepConfig struct {
	Source  SourceID `json:"source" yaml:"source" mapstructure:"source"`
	Lookup  Lookup   `json:"lookup" yaml:"lookup" mapstructure:"lookup"`
	Enabled bool     `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// SourceConfig holds per-source policy and credentials.
type SourceConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Timeout bounds one fetch attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// Retries is the number of retries after a transient failure.
	Retries int `json:"retries" yaml:"retries" mapstructure:"retries"`

	// RateInterval is the minimum spacing between requests to the source.
	RateInterval time.Duration `json:"rate_interval" yaml:"rate_interval" mapstructure:"rate_interval"`

	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
	Mailto  string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxResults caps title-search results (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ReportConfig holds report-level settings.
type ReportConfig struct {
	// PreprintWarningThreshold is the share of preprint entries above
	// which the report carries a warning (0.5).
	PreprintWarningThreshold float64 `json:"preprint_warning_threshold" yaml:"preprint_warning_threshold" mapstructure:"preprint_warning_threshold"`
}

// VerifyConfig is the configuration surface consumed by the engine and CLI.
type VerifyConfig struct {
	HTTP       HTTPConfig                `json:"http" yaml:"http" mapstructure:"http"`
	Thresholds Thresholds                `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
	Cache      CacheConfig               `json:"cache" yaml:"cache" mapstructure:"cache"`
	Workers    int                       `json:"workers" yaml:"workers" mapstructure:"workers"`
	Steps      []StepConfig              `json:"steps" yaml:"steps" mapstructure:"steps"`
	Sources    map[SourceID]SourceConfig `json:"sources" yaml:"sources" mapstructure:"sources"`
	Report     ReportConfig              `json:"report" yaml:"report" mapstructure:"report"`

	// BatchTimeout is the overall deadline for one run; 0 means none.
	BatchTimeout time.Duration `json:"batch_timeout" yaml:"batch_timeout" mapstructure:"batch_timeout"`

	// VenuesFile optionally replaces the built-in venue table.
	VenuesFile string `json:"venues_file,omitempty" yaml:"venues_file,omitempty" mapstructure:"venues_file"`

	// LibraryPath is the SQLite reference index used by the local source.
	LibraryPath string `json:"library_path,omitempty" yaml:"library_path,omitempty" mapstructure:"library_path"`
}

// DefaultThresholds returns the standard matching thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleEquivalent: 0.95,
		AuthorOverlap:   0.70,
		YearTolerance:   1,
		DifferentPaper:  0.5,
		VenueSimilarity: 0.8,
	}
}

// DefaultSteps returns the default priority plan: identifier lookups
// first, then title lookups in fallback order.
func DefaultSteps() []StepConfig {
	return []StepConfig{
		{Source: SourceArxiv, Lookup: LookupArxivID, Enabled: true},
		{Source: SourceCrossref, Lookup: LookupDOI, Enabled: true},
		{Source: SourceSemanticScholar, Lookup: LookupArxivID, Enabled: true},
		{Source: SourceSemanticScholar, Lookup: LookupTitle, Enabled: true},
		{Source: SourceDBLP, Lookup: LookupTitle, Enabled: true},
		{Source: SourceOpenAlex, Lookup: LookupTitle, Enabled: true},
		{Source: SourceArxiv, Lookup: LookupTitle, Enabled: true},
		{Source: SourceCrossref, Lookup: LookupTitle, Enabled: true},
		{Source: SourceLocal, Lookup: LookupTitle, Enabled: true},
		{Source: SourceScholar, Lookup: LookupTitle, Enabled: false},
	}
}

// DefaultVerifyConfig returns a fully populated configuration.
func DefaultVerifyConfig() VerifyConfig {
	src := func(interval time.Duration, enabled bool) SourceConfig {
		return SourceConfig{
			Enabled:      enabled,
			Timeout:      30 * time.Second,
			Retries:      2,
			RateInterval: interval,
			MaxResults:   5,
		}
	}
	return VerifyConfig{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "citecheck/0.1",
		},
		Thresholds: DefaultThresholds(),
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
			MaxSize: 1000,
		},
		Workers: 10,
		Steps:   DefaultSteps(),
		Sources: map[SourceID]SourceConfig{
			SourceArxiv:           src(3*time.Second, true),
			SourceCrossref:        src(time.Second, true),
			SourceSemanticScholar: src(time.Second, true),
			SourceDBLP:            src(time.Second, true),
			SourceOpenAlex:        src(time.Second, true),
			SourceScholar:         src(5*time.Second, false),
			SourceLocal:           src(0, true),
		},
		Report: ReportConfig{PreprintWarningThreshold: 0.5},
	}
}
