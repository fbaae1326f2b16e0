// Package hud holds the HUD data-standard taxonomies and the helpers that turn
// free-text spreadsheet cells into taxonomy codes.
package hud

import "strconv"

// Code is a HUD taxonomy code. Blank marks a field nobody answered.
type Code int

const (
	Blank            Code = -1
	No               Code = 0
	Yes              Code = 1
	ClientDoesntKnow Code = 8
	ClientRefused    Code = 9
	DataNotCollected Code = 99
)

// Relationship-to-head-of-household codes.
const (
	RelSelf          Code = 1
	RelChild         Code = 2
	RelSpouse        Code = 3
	RelOtherRelation Code = 4
	RelNonRelation   Code = 5
)

// IsUnset reports whether c carries no answer at all: blank or not collected.
// Merges overwrite only unset values; don't-know and refused are answers.
func (c Code) IsUnset() bool {
	return c == Blank || c == DataNotCollected
}

// IsNonAnswer reports whether c is one of the data-quality non-answers
// (doesn't know, refused, not collected).
func (c Code) IsNonAnswer() bool {
	return c == ClientDoesntKnow || c == ClientRefused || c == DataNotCollected
}

func (c Code) String() string {
	if c == Blank {
		return ""
	}
	return strconv.Itoa(int(c))
}

// ParseCode reads the numeric form written by String. An empty string is Blank.
func ParseCode(s string) (Code, error) {
	if s == "" {
		return Blank, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Blank, err
	}
	return Code(n), nil
}

// Entry pairs a code with its canonical label.
type Entry struct {
	Code  Code
	Label string
}

// Table is one HUD enumeration. Entry order is significant: lookups return the
// first matching entry.
type Table struct {
	Name    string
	entries []Entry
}

// NewTable builds a table from entries in display order.
func NewTable(name string, entries ...Entry) *Table {
	return &Table{Name: name, entries: append([]Entry(nil), entries...)}
}

// WithDataQuality returns a copy of t extended with the shared data-quality
// vocabulary.
func (t *Table) WithDataQuality() *Table {
	return NewTable(t.Name, append(append([]Entry(nil), t.entries...), dataQuality...)...)
}

// Entries returns a copy of the table's entries.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Codes returns the table's codes in display order.
func (t *Table) Codes() []Code {
	codes := make([]Code, len(t.entries))
	for i, e := range t.entries {
		codes[i] = e.Code
	}
	return codes
}

// Label returns the canonical label for code.
func (t *Table) Label(code Code) (string, bool) {
	for _, e := range t.entries {
		if e.Code == code {
			return e.Label, true
		}
	}
	return "", false
}

// Has reports whether code belongs to the table.
func (t *Table) Has(code Code) bool {
	_, ok := t.Label(code)
	return ok
}

// NotCollected returns the table's "Data not collected" code, if it has one.
func (t *Table) NotCollected() (Code, bool) {
	for _, e := range t.entries {
		if e.Label == labelDataNotCollected {
			return e.Code, true
		}
	}
	return Blank, false
}

const labelDataNotCollected = "Data not collected"

var dataQuality = []Entry{
	{ClientDoesntKnow, "Client doesn’t know"},
	{ClientRefused, "Client refused"},
	{DataNotCollected, labelDataNotCollected},
	{Blank, "(Please choose an option)"},
}
