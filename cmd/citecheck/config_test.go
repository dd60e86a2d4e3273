// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citecheck/internal/secrets"
	"github.com/pdiddy/citecheck/pkg/types"
)

func newTestViper(t *testing.T, yamlDoc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	if yamlDoc != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yamlDoc)))
	}
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper(t, ""))
	require.NoError(t, err)

	d := types.DefaultVerifyConfig()
	assert.Equal(t, d.Workers, cfg.Workers)
	assert.Equal(t, d.Thresholds, cfg.Thresholds)
	assert.Equal(t, d.Cache, cfg.Cache)
	assert.Len(t, cfg.Steps, len(d.Steps))
	assert.Equal(t, defaultLibraryPath, cfg.LibraryPath)
	assert.False(t, cfg.Sources[types.SourceScholar].Enabled)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	cfg, err := loadConfig(newTestViper(t, `
workers: 4
batch_timeout: 2m
cache:
  ttl: 10m
sources:
  crossref:
    retries: 5
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 2*time.Minute, cfg.BatchTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled, "unset keys keep their defaults")

	cr := cfg.Sources[types.SourceCrossref]
	assert.Equal(t, 5, cr.Retries)
	assert.Equal(t, 30*time.Second, cr.Timeout)
	assert.True(t, cr.Enabled)
}

func TestLoadConfigAppliesSecrets(t *testing.T) {
	saved := loadedSecrets
	t.Cleanup(func() { loadedSecrets = saved })
	loadedSecrets = map[string]string{
		secrets.SemanticScholarAPIKey: "s2-key",
		secrets.CrossrefMailto:        "me@example.org",
	}

	cfg, err := loadConfig(newTestViper(t, `
sources:
  crossref:
    mailto: config@example.org
`))
	require.NoError(t, err)
	assert.Equal(t, "s2-key", cfg.Sources[types.SourceSemanticScholar].APIKey)
	assert.Equal(t, "config@example.org", cfg.Sources[types.SourceCrossref].Mailto)
}

func TestRestrictSources(t *testing.T) {
	cfg := types.DefaultVerifyConfig()
	require.NoError(t, restrictSources(&cfg, []string{"Crossref", " dblp"}))

	for id, sc := range cfg.Sources {
		want := id == types.SourceCrossref || id == types.SourceDBLP
		assert.Equal(t, want, sc.Enabled, "source %s", id)
	}
}

func TestRestrictSourcesEnablesDisabledSteps(t *testing.T) {
	cfg := types.DefaultVerifyConfig()
	require.NoError(t, restrictSources(&cfg, []string{"scholar"}))

	assert.True(t, cfg.Sources[types.SourceScholar].Enabled)
	last := cfg.Steps[len(cfg.Steps)-1]
	assert.Equal(t, types.SourceScholar, last.Source)
	assert.True(t, last.Enabled)
}

func TestRestrictSourcesUnknown(t *testing.T) {
	cfg := types.DefaultVerifyConfig()
	err := restrictSources(&cfg, []string{"google"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "google"`)
}

func TestLoadEntriesFromStdin(t *testing.T) {
	stdin := strings.NewReader(`- id: a
  title: A Study
  issued: 2020
`)
	entries, err := loadEntries([]string{"-"}, stdin)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, 2020, entries[0].Year)
}

func TestOpenLibraryMissingFile(t *testing.T) {
	store, err := openLibrary(t.TempDir() + "/absent.db")
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestVerifyHelpListsInputFormats(t *testing.T) {
	for _, want := range []string{"BibTeX", "CSL-YAML", "CSL-JSON", "plain-text"} {
		assert.Contains(t, verifyCmd.Long, want)
	}
	assert.Contains(t, verifyCmd.Short, "BibTeX")
	assert.NotNil(t, verifyCmd.Flags().Lookup("keys"))
}

func TestLoadEntriesFromBibFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	require.NoError(t, os.WriteFile(path, []byte(`@article{a,
  title  = {A Study},
  author = {Smith, Jane},
  year   = {2020}
}
`), 0o644))

	entries, err := loadEntries([]string{path}, strings.NewReader(""))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, []string{"Smith, Jane"}, entries[0].Authors)
}
