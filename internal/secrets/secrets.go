// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and contact addresses for the metadata
// sources. Keys come from a directory of plain-text files (the filename is
// the key name, the trimmed contents the value) and from a .env file whose
// variable names map onto the same keys.
//
// Supported keys: semantic-scholar-api-key, crossref-mailto, openalex-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Recognized key names.
const (
	SemanticScholarAPIKey = "semantic-scholar-api-key"
	CrossrefMailto        = "crossref-mailto"
	OpenAlexEmail         = "openalex-email"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadEnv reads a .env file and returns its values under secret key names:
// SEMANTIC_SCHOLAR_API_KEY becomes semantic-scholar-api-key. A missing file
// yields an empty map.
func LoadEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	secrets := make(map[string]string, len(vars))
	for k, v := range vars {
		if v = strings.TrimSpace(v); v != "" {
			secrets[KeyName(k)] = v
		}
	}
	return secrets, nil
}

// KeyName converts an environment variable name to its secret key name.
func KeyName(env string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(env)), "_", "-")
}

// LoadAll merges the secrets directory with the .env file. Files in the
// directory win over .env values.
func LoadAll(dir, envPath string) (map[string]string, error) {
	env, err := LoadEnv(envPath)
	if err != nil {
		return nil, err
	}
	files, err := Load(dir)
	if err != nil {
		return nil, err
	}
	for k, v := range files {
		env[k] = v
	}
	return env, nil
}

// Apply fills source credentials that the configuration leaves empty.
func Apply(cfg *types.VerifyConfig, s map[string]string) {
	set := func(id types.SourceID, fn func(*types.SourceConfig)) {
		sc, ok := cfg.Sources[id]
		if !ok {
			return
		}
		fn(&sc)
		cfg.Sources[id] = sc
	}
	if v := s[SemanticScholarAPIKey]; v != "" {
		set(types.SourceSemanticScholar, func(sc *types.SourceConfig) {
			if sc.APIKey == "" {
				sc.APIKey = v
			}
		})
	}
	if v := s[CrossrefMailto]; v != "" {
		set(types.SourceCrossref, func(sc *types.SourceConfig) {
			if sc.Mailto == "" {
				sc.Mailto = v
			}
		})
	}
	if v := s[OpenAlexEmail]; v != "" {
		set(types.SourceOpenAlex, func(sc *types.SourceConfig) {
			if sc.Mailto == "" {
				sc.Mailto = v
			}
		})
	}
}
