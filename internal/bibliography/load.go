// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Format selects the input encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	// FormatText is a numbered plain-text reference list.
	FormatText Format = "text"

	FormatBibTeX Format = "bibtex"
)

// ErrUnsupportedFormat indicates an input encoding the loader cannot read.
var ErrUnsupportedFormat = errors.New("unsupported bibliography format")

// FormatFor picks the format from a file extension. Unknown extensions
// return FormatAuto, which sniffs the content.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".md":
		return FormatText
	case ".bib", ".bibtex":
		return FormatBibTeX
	}
	return FormatAuto
}

// Load reads a BibTeX, CSL-YAML, CSL-JSON, or plain-text reference list file.
func Load(path string) ([]types.ClaimedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a bibliography. A YAML document may be a bare list or
// a Pandoc metadata block with a "references" key. Items convert to entries
// in file order; validation is left to the engine.
func Parse(r io.Reader, f Format) ([]types.ClaimedEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}
	if f == FormatAuto {
		f = sniff(data)
	}

	var items []Item
	switch f {
	case FormatJSON:
		items, err = decodeJSON(data)
	case FormatYAML:
		items, err = decodeYAML(data)
	case FormatText:
		return ParseReferenceList(string(data)), nil
	case FormatBibTeX:
		return decodeBibTeX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]types.ClaimedEntry, len(items))
	for i := range items {
		entries[i] = items[i].Entry()
	}
	return entries, nil
}

func sniff(data []byte) Format {
	t := bytes.TrimSpace(data)
	first, _, _ := bytes.Cut(t, []byte("\n"))
	switch {
	case refLineRe.Match(first):
		return FormatText
	case bytes.HasPrefix(t, []byte("@")) || bibEntryRe.Match(t):
		return FormatBibTeX
	case len(t) > 0 && (t[0] == '[' || t[0] == '{'):
		return FormatJSON
	case referencesSection(string(t)) != "":
		return FormatText
	}
	return FormatYAML
}

// bibEntryRe spots a BibTeX record after leading comments.
var bibEntryRe = regexp.MustCompile(`(?m)^\s*@[A-Za-z]+\s*[{(]`)

type references struct {
	References []Item `json:"references" yaml:"references"`
}

func decodeJSON(data []byte) ([]Item, error) {
	t := bytes.TrimSpace(data)
	if len(t) > 0 && t[0] == '{' {
		var doc references
		if err := json.Unmarshal(t, &doc); err != nil {
			return nil, fmt.Errorf("parsing CSL-JSON: %w", err)
		}
		return doc.References, nil
	}
	var items []Item
	if err := json.Unmarshal(t, &items); err != nil {
		return nil, fmt.Errorf("parsing CSL-JSON: %w", err)
	}
	return items, nil
}

func decodeYAML(data []byte) ([]Item, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing CSL-YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]

	var items []Item
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("parsing CSL-YAML: %w", err)
		}
	case yaml.MappingNode:
		var doc references
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing CSL-YAML: %w", err)
		}
		items = doc.References
	default:
		return nil, fmt.Errorf("parsing CSL-YAML: expected a list or a references block")
	}
	return items, nil
}
