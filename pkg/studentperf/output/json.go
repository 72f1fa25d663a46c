// Package output renders class metrics and exports tables: JSON, CSV,
// plain text and an xlsx report with charts.
package output

import (
	"encoding/json"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

// Document is the JSON shape emitted for an analysis.
type Document struct {
	// Source names where the input came from (file path, "stdin", "cache").
	Source          string                  `json:"source,omitempty"`
	Metrics         models.ClassMetrics     `json:"metrics"`
	SubjectAverages []models.SubjectAverage `json:"subjectAverages"`
}

// NewDocument bundles m with its subject averages.
func NewDocument(source string, m models.ClassMetrics) Document {
	return Document{
		Source:          source,
		Metrics:         m,
		SubjectAverages: metrics.SubjectAverages(m),
	}
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
