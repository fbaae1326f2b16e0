// Package source reads client exports into rows keyed by column header.
package source

import (
	"fmt"
	"strings"
)

// Row is one data row. Line is the 1-based line (or sheet row) it started on.
type Row struct {
	Line   int
	header *Header
	values []string
}

// Header maps column names to positions.
type Header struct {
	names []string
	index map[string]int
}

func NewHeader(names []string) *Header {
	h := &Header{names: make([]string, len(names)), index: make(map[string]int, len(names))}
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		h.names[i] = name
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}
	return h
}

// Names returns the column names in file order.
func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

// Has reports whether the file has the column.
func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Missing returns the names in want that the header lacks.
func (h *Header) Missing(want []string) []string {
	var missing []string
	for _, name := range want {
		if !h.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// NewRow pads or trims values to the header width.
func NewRow(line int, header *Header, values []string) Row {
	cells := make([]string, len(header.names))
	copy(cells, values)
	return Row{Line: line, header: header, values: cells}
}

// Get returns the cell under column name, or "" when the file has no such
// column.
func (r Row) Get(name string) string {
	if r.header == nil {
		return ""
	}
	i, ok := r.header.index[name]
	if !ok {
		return ""
	}
	return r.values[i]
}

// Has reports whether the row's file has the column.
func (r Row) Has(name string) bool {
	return r.header != nil && r.header.Has(name)
}

// Raw returns the cells in file order.
func (r Row) Raw() []string {
	return append([]string(nil), r.values...)
}

// String renders the non-empty cells for error messages.
func (r Row) String() string {
	if r.header == nil {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i, v := range r.values {
		if v == "" {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %q", r.header.names[i], v)
	}
	b.WriteByte('}')
	return b.String()
}

// Table is a parsed file.
type Table struct {
	Header *Header
	Rows   []Row
}

// FromRecords builds a table from a header record followed by data records.
// lines gives each record's line number; nil numbers records from 1.
func FromRecords(records [][]string, lines []int) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := NewHeader(records[0])
	t := &Table{Header: header}
	for i, rec := range records[1:] {
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		t.Rows = append(t.Rows, NewRow(line, header, rec))
	}
	return t, nil
}
