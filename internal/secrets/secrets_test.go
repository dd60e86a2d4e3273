// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citecheck/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "crossref-mailto", "  me@example.org  \n")
				writeFile(t, dir, "semantic-scholar-api-key", "sk_xyz789")
				writeFile(t, dir, "openalex-email", "user@example.com\n")
				return dir
			},
			want: map[string]string{
				"crossref-mailto":          "me@example.org",
				"semantic-scholar-api-key": "sk_xyz789",
				"openalex-email":           "user@example.com",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "semantic-scholar-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"semantic-scholar-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "crossref-mailto", "real@example.org")
				return dir
			},
			want: map[string]string{
				"crossref-mailto": "real@example.org",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openalex-email", "a@b.c")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"openalex-email": "a@b.c",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "# keys\nSEMANTIC_SCHOLAR_API_KEY=sk_env\nCROSSREF_MAILTO=\"env@example.org\"\nEMPTY=\n")

	got, err := LoadEnv(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"semantic-scholar-api-key": "sk_env",
		"crossref-mailto":          "env@example.org",
	}, got)

	missing, err := LoadEnv(filepath.Join(dir, "nope.env"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLoadAllPrefersFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".secrets")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFile(t, dir, "semantic-scholar-api-key", "sk_file")
	writeFile(t, root, ".env", "SEMANTIC_SCHOLAR_API_KEY=sk_env\nOPENALEX_EMAIL=oa@example.org\n")

	got, err := LoadAll(dir, filepath.Join(root, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "sk_file", got[SemanticScholarAPIKey])
	assert.Equal(t, "oa@example.org", got[OpenAlexEmail])
}

func TestApply(t *testing.T) {
	cfg := types.DefaultVerifyConfig()
	cr := cfg.Sources[types.SourceCrossref]
	cr.Mailto = "configured@example.org"
	cfg.Sources[types.SourceCrossref] = cr

	Apply(&cfg, map[string]string{
		SemanticScholarAPIKey: "sk",
		CrossrefMailto:        "secret@example.org",
		OpenAlexEmail:         "oa@example.org",
	})

	assert.Equal(t, "sk", cfg.Sources[types.SourceSemanticScholar].APIKey)
	assert.Equal(t, "configured@example.org", cfg.Sources[types.SourceCrossref].Mailto, "config wins")
	assert.Equal(t, "oa@example.org", cfg.Sources[types.SourceOpenAlex].Mailto)
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "crossref-mailto", KeyName("CROSSREF_MAILTO"))
	assert.Equal(t, "openalex-email", KeyName(" openalex_email "))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
