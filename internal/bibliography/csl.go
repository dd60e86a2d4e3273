// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography loads claimed bibliography entries from CSL-YAML and
// CSL-JSON files, the formats Pandoc and reference managers export.
package bibliography

import (
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citecheck/internal/normalize"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Item is one CSL bibliographic record. Only the fields the verifier reads
// are decoded; everything else in the file is ignored.
type Item struct {
	ID             string `json:"id" yaml:"id"`
	Type           string `json:"type" yaml:"type"`
	Title          string `json:"title" yaml:"title"`
	Author         []Name `json:"author" yaml:"author"`
	Issued         *Date  `json:"issued" yaml:"issued"`
	ContainerTitle string `json:"container-title" yaml:"container-title"`
	EventTitle     string `json:"event-title" yaml:"event-title"`
	Event          string `json:"event" yaml:"event"`
	CollectionName string `json:"collection-title" yaml:"collection-title"`
	Publisher      string `json:"publisher" yaml:"publisher"`
	Number         string `json:"number" yaml:"number"`
	DOI            string `json:"DOI" yaml:"DOI"`
	URL            string `json:"URL" yaml:"URL"`
	Note           string `json:"note" yaml:"note"`

	// Arxiv is the non-standard field some exporters write for the arXiv id.
	Arxiv string `json:"arxiv" yaml:"arxiv"`
}

// Name is a CSL name variable.
type Name struct {
	Family   string `json:"family" yaml:"family"`
	Given    string `json:"given" yaml:"given"`
	Particle string `json:"non-dropping-particle" yaml:"non-dropping-particle"`
	Literal  string `json:"literal" yaml:"literal"`
}

// String renders the name as "Family, Given", or the literal form.
func (n Name) String() string {
	if n.Literal != "" {
		return strings.TrimSpace(n.Literal)
	}
	family := strings.TrimSpace(n.Particle + " " + n.Family)
	given := strings.TrimSpace(n.Given)
	switch {
	case family == "":
		return given
	case given == "":
		return family
	}
	return family + ", " + given
}

// Date is a CSL date variable. Besides the structured date-parts form it
// accepts a bare scalar ("2019", "2019-06-02"), which is kept in Raw.
type Date struct {
	DateParts [][]any `json:"date-parts" yaml:"date-parts"`
	Raw       string  `json:"raw" yaml:"raw"`
	Literal   string  `json:"literal" yaml:"literal"`
}

type dateFields Date

// UnmarshalYAML accepts a mapping or a scalar.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Raw = node.Value
		return nil
	}
	return node.Decode((*dateFields)(d))
}

// UnmarshalJSON accepts an object, a string, or a number.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "" || s == "null":
		return nil
	case s[0] == '"':
		return json.Unmarshal(b, &d.Raw)
	case s[0] != '{':
		d.Raw = s
		return nil
	}
	return json.Unmarshal(b, (*dateFields)(d))
}

// Year returns the year of the date, 0 when it has none.
func (d *Date) Year() int {
	if d == nil {
		return 0
	}
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		if y := toInt(d.DateParts[0][0]); y > 0 {
			return y
		}
	}
	if y := normalize.ExtractYear(d.Raw); y > 0 {
		return y
	}
	return normalize.ExtractYear(d.Literal)
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case uint64:
		return int(x)
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(x))
		return n
	}
	return 0
}

// Entry converts the item into a claimed entry.
func (it *Item) Entry() types.ClaimedEntry {
	e := types.ClaimedEntry{
		Key:   strings.TrimSpace(it.ID),
		Title: strings.TrimSpace(it.Title),
		Year:  it.Issued.Year(),
		Venue: it.venue(),
		DOI:   strings.TrimSpace(it.DOI),
		URL:   strings.TrimSpace(it.URL),
		Notes: strings.TrimSpace(it.Note),
	}
	for _, n := range it.Author {
		if s := n.String(); s != "" {
			e.Authors = append(e.Authors, s)
		}
	}
	if id := it.arxivID(); id != "" {
		e.Identifiers = map[string]string{"arxiv": id}
	}
	return e
}

func (it *Item) venue() string {
	for _, v := range []string{it.ContainerTitle, it.EventTitle, it.Event, it.CollectionName} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if isArxiv(it.Publisher) {
		return strings.TrimSpace(it.Publisher)
	}
	return ""
}

// arxivID reads the explicit arxiv field, or the report number that
// Zotero-style exports fill in for arXiv-published items.
func (it *Item) arxivID() string {
	if id := normalize.ArxivID(it.Arxiv); id != "" {
		return id
	}
	if isArxiv(it.Publisher) || isArxiv(it.ContainerTitle) || strings.Contains(strings.ToLower(it.Number), "arxiv") {
		return normalize.ArxivID(it.Number)
	}
	return ""
}

func isArxiv(s string) bool {
	return strings.Contains(strings.ToLower(s), "arxiv")
}
