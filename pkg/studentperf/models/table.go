// Package models defines the data structures shared by the parser, the
// metrics engine and the renderers.
package models

// RawTable is the result of parsing delimited text: a header row and the
// data rows as plain strings.
type RawTable struct {
	// Headers holds the name-column label followed by the subject names.
	Headers []string `json:"headers"`
	// Rows holds one slice of fields per data line. A row may be shorter or
	// longer than Headers.
	Rows [][]string `json:"rows"`
}

// EmptyTable returns a table with non-nil, empty headers and rows.
func EmptyTable() RawTable {
	return RawTable{Headers: []string{}, Rows: [][]string{}}
}

// SubjectNames returns the headers after the name column.
func (t RawTable) SubjectNames() []string {
	if len(t.Headers) < 2 {
		return []string{}
	}
	names := make([]string, len(t.Headers)-1)
	copy(names, t.Headers[1:])
	return names
}

// IsEmpty reports whether the table carries no header.
func (t RawTable) IsEmpty() bool {
	return len(t.Headers) == 0
}

// Clone returns a deep copy of the table.
func (t RawTable) Clone() RawTable {
	out := RawTable{
		Headers: append([]string{}, t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string{}, row...)
	}
	return out
}
