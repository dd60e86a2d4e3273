// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/pdiddy/citecheck/internal/secrets"
	"github.com/pdiddy/citecheck/pkg/types"
)

// defaultLibraryPath is the SQLite reference index location.
var defaultLibraryPath = filepath.Join(xdg.DataHome, "citecheck", "library.db")

// setDefaults registers every configuration key so that a config file
// setting one field of a nested block keeps the defaults of the others.
func setDefaults(v *viper.Viper) {
	d := types.DefaultVerifyConfig()

	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)

	v.SetDefault("thresholds.title_equivalent", d.Thresholds.TitleEquivalent)
	v.SetDefault("thresholds.author_overlap", d.Thresholds.AuthorOverlap)
	v.SetDefault("thresholds.year_tolerance", d.Thresholds.YearTolerance)
	v.SetDefault("thresholds.exact_year", d.Thresholds.ExactYear)
	v.SetDefault("thresholds.different_paper", d.Thresholds.DifferentPaper)
	v.SetDefault("thresholds.venue_similarity", d.Thresholds.VenueSimilarity)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.max_size", d.Cache.MaxSize)

	v.SetDefault("workers", d.Workers)
	v.SetDefault("batch_timeout", d.BatchTimeout)
	v.SetDefault("steps", d.Steps)
	v.SetDefault("report.preprint_warning_threshold", d.Report.PreprintWarningThreshold)
	v.SetDefault("library_path", defaultLibraryPath)

	for id, sc := range d.Sources {
		prefix := "sources." + string(id) + "."
		v.SetDefault(prefix+"enabled", sc.Enabled)
		v.SetDefault(prefix+"timeout", sc.Timeout)
		v.SetDefault(prefix+"retries", sc.Retries)
		v.SetDefault(prefix+"rate_interval", sc.RateInterval)
		v.SetDefault(prefix+"max_results", sc.MaxResults)
	}
}

// loadConfig decodes the merged configuration and fills in credentials
// from the loaded secrets.
func loadConfig(v *viper.Viper) (types.VerifyConfig, error) {
	cfg := types.DefaultVerifyConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if len(cfg.Steps) == 0 {
		cfg.Steps = types.DefaultSteps()
	}
	secrets.Apply(&cfg, loadedSecrets)
	return cfg, nil
}
