package studentperf

import (
	"io"
	"os"
	"strings"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/parser"
)

// ParseInput parses text and rejects input that cannot back a dataset:
// blank text, or a header without subject columns.
func ParseInput(text string) (models.RawTable, error) {
	if strings.TrimSpace(text) == "" {
		return models.RawTable{}, ErrEmptyInput
	}
	table := parser.Parse(text)
	if table.IsEmpty() || len(table.SubjectNames()) == 0 {
		return models.RawTable{}, ErrMalformedHeader
	}
	return table, nil
}

// Analyze parses text and computes its class metrics.
func Analyze(text string) (models.RawTable, models.ClassMetrics, error) {
	table, err := ParseInput(text)
	if err != nil {
		return models.RawTable{}, models.ClassMetrics{}, err
	}
	return table, metrics.ComputeTable(table), nil
}

// ReadInput reads all of r. Failures are reported as an InputError for
// source.
func ReadInput(r io.Reader, source string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", NewInputError(source, err)
	}
	return string(data), nil
}

// ReadFile reads the input text at path; "-" reads stdin.
func ReadFile(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		return ReadInput(stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", NewInputError(path, err)
	}
	defer f.Close()
	return ReadInput(f, path)
}
