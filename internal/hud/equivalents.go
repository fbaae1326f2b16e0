package hud

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultEquivalentsVersion identifies the built-in equivalents table.
const DefaultEquivalentsVersion = "2016.3"

// Equivalents maps raw strings seen in real exports onto canonical labels.
// A raw string may map to several labels when different tables spell the same
// answer differently; the normalizer uses the first one present in the table
// being resolved. The table is append-only: a raw string can gain labels but
// never lose them.
type Equivalents struct {
	Version string
	m       map[string][]string
}

// NewEquivalents returns an empty table.
func NewEquivalents(version string) *Equivalents {
	return &Equivalents{Version: version, m: make(map[string][]string)}
}

// DefaultEquivalents returns a fresh copy of the built-in table.
func DefaultEquivalents() *Equivalents {
	e := NewEquivalents(DefaultEquivalentsVersion)
	for _, pair := range defaultEquivalents {
		_ = e.Add(pair[0], pair[1])
	}
	return e
}

// Add records that raw means canonical. Adding an existing pair is a no-op.
func (e *Equivalents) Add(raw, canonical string) error {
	if raw == canonical {
		return fmt.Errorf("equivalent %q maps to itself", raw)
	}
	if canonical == "" {
		return fmt.Errorf("equivalent %q has no canonical label", raw)
	}
	for _, existing := range e.m[raw] {
		if existing == canonical {
			return nil
		}
	}
	e.m[raw] = append(e.m[raw], canonical)
	return nil
}

// Canonical returns the labels raw maps to, in insertion order.
func (e *Equivalents) Canonical(raw string) []string {
	return e.m[raw]
}

// Len is the number of distinct raw strings.
func (e *Equivalents) Len() int {
	return len(e.m)
}

// Raw returns the known raw strings in sorted order.
func (e *Equivalents) Raw() []string {
	keys := make([]string, 0, len(e.m))
	for k := range e.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge appends other's pairs to e. The merged version records both sources.
func (e *Equivalents) Merge(other *Equivalents) error {
	for _, raw := range other.Raw() {
		for _, canonical := range other.m[raw] {
			if err := e.Add(raw, canonical); err != nil {
				return err
			}
		}
	}
	if other.Version != "" {
		e.Version = e.Version + "+" + other.Version
	}
	return nil
}

type equivalentsFile struct {
	Version     string `yaml:"version"`
	Equivalents []struct {
		Raw       string `yaml:"raw"`
		Canonical string `yaml:"canonical"`
	} `yaml:"equivalents"`
}

// LoadEquivalents decodes a YAML equivalents file:
//
//	version: "2024-03"
//	equivalents:
//	  - raw: "Refused"
//	    canonical: "Client refused"
func LoadEquivalents(r io.Reader) (*Equivalents, error) {
	var f equivalentsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode equivalents: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("equivalents file has no version")
	}
	e := NewEquivalents(f.Version)
	for i, pair := range f.Equivalents {
		if err := e.Add(pair.Raw, pair.Canonical); err != nil {
			return nil, fmt.Errorf("equivalent %d: %w", i, err)
		}
	}
	return e, nil
}

// LoadEquivalentsFile reads path and merges it over the built-in table.
func LoadEquivalentsFile(path string) (*Equivalents, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	extra, err := LoadEquivalents(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	e := DefaultEquivalents()
	if err := e.Merge(extra); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// defaultEquivalents is accumulated from real exports. Append only.
var defaultEquivalents = [][2]string{
	// Data quality
	{"Client Refused", "Client refused"},
	{"Refused", "Client refused"},
	{"Client doesn't know", "Client doesn’t know"},
	{"Client Doesn’t Know", "Client doesn’t know"},
	{"Client Doesn't Know", "Client doesn’t know"},
	{"Data Not Collected", "Data not collected"},
	{"YES", "Yes"},
	{"NO", "No"},

	// Relationship to head of household
	{"Head of household's child", "Head of household’s child"},
	{"Head of household's spouse or partner", "Head of household’s spouse or partner"},
	{"Head of household's other relation member (other relation to head of household)", "Head of household’s other relation member (other relation to head of household)"},

	// Destinations and prior residences
	{"Permanent housing for formerly homeless persons", "Permanent housing for formerly homeless persons (such as: CoC project; or HUD legacy programs; or HOPWA PH)"},
	{"Permanent housing for formerly homeless persons", "Permanent housing for formerly homeless persons (such as: a CoC project; HUD legacy programs; or HOPWA PH)"},
	{"Permanent Housing", "Permanent housing for formerly homeless persons (such as: CoC project; or HUD legacy programs; or HOPWA PH)"},
	{"Staying or living with friends, temporary tenure", "Staying or living with friends, temporary tenure (e.g., room apartment or house)"},
	{"Staying or living  with friends, temporary tenure", "Staying or living with friends, temporary tenure (e.g., room apartment or house)"},
	{"Staying or living  with friends, permanent tenure", "Staying or living with friends, permanent tenure"},
	{"Staying or living in a family member's room, apartment or house", "Staying or living in a family member’s room, apartment or house"},
	{"Staying or living in a friend's room, apartment or house", "Staying or living in a friend’s room, apartment or house"},
	{"Staying or living with family, temporary tenure", "Staying or living with family, temporary tenure (e.g., room, apartment or house)"},
	{"Place not meant for human habitation", "Place not meant for habitation (e.g., a vehicle, an abandoned building, bus/train/subway station/airport or anywhere outside)"},
	{"On the street or other place not meant for human habitation", "Place not meant for habitation (e.g., a vehicle, an abandoned building, bus/train/subway station/airport or anywhere outside)"},
	{"Rental by client", "Rental by client, no ongoing housing subsidy"},
	{"Rental by client, no ongoing housing subsidy (Private Market)", "Rental by client, no ongoing housing subsidy"},
	{"Jail, prison, or juvenile facility", "Jail, prison or juvenile detention facility"},

	// Times homeless
	{"4", "Four or more times"},
	{"4 or more", "Four or more times"},

	// Ethnicity and race
	{"Non-Hispanic / Non-Latino", "Non-Hispanic/Non-Latino"},
	{"Non- Hispanic/Non-Latino", "Non-Hispanic/Non-Latino"},
	{"Hispanic / Latino", "Hispanic/Latino"},
	{"Hispanic", "Hispanic/Latino"},
	{"Black", "Black or African American"},
}
