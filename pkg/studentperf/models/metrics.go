package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ClassMetrics is the aggregate view over all students of a parsed table.
type ClassMetrics struct {
	// SubjectNames are the table headers without the name column.
	SubjectNames []string `json:"subjectNames"`
	// Students are in input order unless a view reordered them.
	Students []StudentRecord `json:"students"`
	// ClassAverage is the mean of student averages, rounded to 2 decimals.
	ClassAverage   float64 `json:"classAvg"`
	HighestAverage float64 `json:"highestAvg"`
	LowestAverage  float64 `json:"lowestAvg"`
	// GradeDistribution counts students per grade in first-seen order.
	GradeDistribution GradeDistribution `json:"gradeDist"`
}

// GradeCount is one entry of a GradeDistribution.
type GradeCount struct {
	Grade Grade
	Count int
}

// GradeDistribution is an insertion-ordered grade to count mapping. Only
// grades that occur are present.
type GradeDistribution []GradeCount

// Add increments the count for g, appending it when first seen.
func (d GradeDistribution) Add(g Grade) GradeDistribution {
	for i := range d {
		if d[i].Grade == g {
			d[i].Count++
			return d
		}
	}
	return append(d, GradeCount{Grade: g, Count: 1})
}

// MarshalJSON encodes the distribution as a JSON object, keys in order.
func (d GradeDistribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, gc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(gc.Grade))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", gc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (d *GradeDistribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("grade distribution: expected object, got %v", tok)
	}
	out := GradeDistribution{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		out = append(out, GradeCount{Grade: Grade(key), Count: count})
	}
	*d = out
	return nil
}

// SubjectAverage is the mean of the present marks for one subject.
type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"avg"`
	// Count is the number of present marks contributing to Average.
	Count int `json:"count"`
}

// Clone returns a deep copy of m.
func (m ClassMetrics) Clone() ClassMetrics {
	out := m
	out.SubjectNames = append([]string{}, m.SubjectNames...)
	out.GradeDistribution = append(GradeDistribution{}, m.GradeDistribution...)
	out.Students = make([]StudentRecord, len(m.Students))
	for i, s := range m.Students {
		s.Marks = append([]Mark{}, s.Marks...)
		out.Students[i] = s
	}
	return out
}
