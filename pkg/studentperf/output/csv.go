package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

// WriteCSV writes the header and rows of t. Fields containing a comma are
// quoted so the output parses back to the same table.
func WriteCSV(w io.Writer, t models.RawTable) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range t.Rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatCSV returns t as CSV text.
func FormatCSV(t models.RawTable) (string, error) {
	var b strings.Builder
	if err := WriteCSV(&b, t); err != nil {
		return "", err
	}
	return b.String(), nil
}
