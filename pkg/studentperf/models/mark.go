package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Mark is a single subject score. An absent mark is a cell that did not
// parse as a finite number; it is distinct from a score of zero.
type Mark struct {
	Value   float64
	Present bool
}

// Score returns a present mark with the given value.
func Score(v float64) Mark {
	return Mark{Value: v, Present: true}
}

// Absent returns a mark with no value.
func Absent() Mark {
	return Mark{}
}

// String renders the mark for display; absent marks render as "-".
func (m Mark) String() string {
	if !m.Present {
		return "-"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON encodes absent marks as null.
func (m Mark) MarshalJSON() ([]byte, error) {
	if !m.Present {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes null as an absent mark.
func (m *Mark) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Absent()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Score(v)
	return nil
}
