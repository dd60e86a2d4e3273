// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// VenueKind classifies a venue for official-version preference.
type VenueKind string

const (
	KindJournal    VenueKind = "journal"
	KindConference VenueKind = "conference"
	KindWorkshop   VenueKind = "workshop"
	KindPreprint   VenueKind = "preprint"
)

// Prestige ranks kinds: Journal > Conference > Workshop > anything else.
func Prestige(k VenueKind) int {
	switch k {
	case KindJournal:
		return 3
	case KindConference:
		return 2
	case KindWorkshop:
		return 1
	default:
		return 0
	}
}

// Venue is one row of the venue table.
type Venue struct {
	// Name is the canonical short form (e.g. "NAACL").
	Name string    `yaml:"name"`
	Kind VenueKind `yaml:"kind"`

	// Aliases are matched as whole-word phrases over the normalized venue
	// text. A leading "=" requires the whole venue to equal the alias.
	Aliases []string `yaml:"aliases"`

	// Academic marks a curated peer-reviewed venue.
	Academic bool `yaml:"academic"`
}

type venueAlias struct {
	phrase string
	exact  bool
	index  int
}

// VenueTable resolves venue strings to canonical venues.
type VenueTable struct {
	venues  []Venue
	aliases []venueAlias
}

// NewVenueTable builds a table from rows. Each row's Name is also an
// alias unless the row lists it as an exact alias.
func NewVenueTable(rows []Venue) *VenueTable {
	t := &VenueTable{venues: rows}
	for i, v := range rows {
		exactOnly := make(map[string]bool)
		for _, a := range v.Aliases {
			if strings.HasPrefix(a, "=") {
				exactOnly[Text(a[1:])] = true
			}
		}
		names := v.Aliases
		if !exactOnly[Text(v.Name)] {
			names = append([]string{v.Name}, v.Aliases...)
		}
		for _, a := range names {
			exact := strings.HasPrefix(a, "=")
			phrase := Text(strings.TrimPrefix(a, "="))
			if phrase == "" {
				continue
			}
			t.aliases = append(t.aliases, venueAlias{phrase: phrase, exact: exact, index: i})
		}
	}
	return t
}

// LoadVenueTable reads a YAML list of venues.
func LoadVenueTable(r io.Reader) (*VenueTable, error) {
	var rows []Venue
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding venue table: %w", err)
	}
	for i, v := range rows {
		if v.Name == "" {
			return nil, fmt.Errorf("venue table row %d: missing name", i+1)
		}
	}
	return NewVenueTable(rows), nil
}

// LoadVenueFile reads a YAML venue table from path.
func LoadVenueFile(path string) (*VenueTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening venue table: %w", err)
	}
	defer f.Close()
	return LoadVenueTable(f)
}

// Venues returns a copy of the table rows.
func (t *VenueTable) Venues() []Venue {
	return append([]Venue(nil), t.venues...)
}

// Lookup resolves venue to its table row. The longest matching alias wins;
// venue text mentioning a workshop yields Kind Workshop.
func (t *VenueTable) Lookup(venue string) (Venue, bool) {
	text := Text(venue)
	if text == "" {
		return Venue{}, false
	}
	padded := " " + text + " "
	best, bestLen := -1, 0
	for _, a := range t.aliases {
		var hit bool
		if a.exact {
			hit = text == a.phrase
		} else {
			hit = strings.Contains(padded, " "+a.phrase+" ")
		}
		if hit && len(a.phrase) > bestLen {
			best, bestLen = a.index, len(a.phrase)
		}
	}
	if best < 0 {
		return Venue{}, false
	}
	v := t.venues[best]
	if v.Kind != KindPreprint && (strings.Contains(padded, " workshop ") || strings.Contains(padded, " workshops ")) {
		v.Kind = KindWorkshop
	}
	return v, true
}

// IsKnownAcademic reports whether venue resolves to a curated academic venue.
func (t *VenueTable) IsKnownAcademic(venue string) bool {
	v, ok := t.Lookup(venue)
	return ok && v.Academic
}

// IsPreprint reports whether venue names a preprint server or mentions
// "arxiv" or "preprint".
func (t *VenueTable) IsPreprint(venue string) bool {
	if v, ok := t.Lookup(venue); ok && v.Kind == KindPreprint {
		return true
	}
	text := " " + Text(venue) + " "
	return strings.Contains(text, "arxiv") || strings.Contains(text, " preprint")
}

// Compatible reports whether two venue strings name the same venue. Both
// resolving through the table compares canonical names; otherwise the
// simplified strings must be equal, nested, or within minSim edit similarity.
func (t *VenueTable) Compatible(a, b string, minSim float64) bool {
	va, okA := t.Lookup(a)
	vb, okB := t.Lookup(b)
	if okA && okB {
		return va.Name == vb.Name
	}
	sa, sb := simplifyVenue(a), simplifyVenue(b)
	if sa == "" || sb == "" {
		return sa == sb
	}
	if sa == sb || strings.Contains(sa, sb) || strings.Contains(sb, sa) {
		return true
	}
	return EditSimilarity(sa, sb) >= minSim
}

// Format renders the canonical venue with its year, e.g. "NAACL 2019".
func (t *VenueTable) Format(venue string, year int) string {
	name := strings.TrimSpace(venue)
	if v, ok := t.Lookup(venue); ok {
		name = v.Name
		if v.Kind == KindWorkshop && !strings.Contains(strings.ToLower(name), "workshop") {
			name += " Workshop"
		}
	}
	if year > 0 {
		y := strconv.Itoa(year)
		if !strings.Contains(name, y) {
			name += " " + y
		}
	}
	return name
}

var venueFiller = map[string]bool{"proceedings": true, "of": true, "the": true, "in": true}

// simplifyVenue drops years, ordinals, and "proceedings of the" filler.
func simplifyVenue(s string) string {
	var kept []string
	for _, tok := range Tokens(s) {
		if venueFiller[tok] || isNumberish(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func isNumberish(tok string) bool {
	digits := strings.TrimRight(tok, "stndrh")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
