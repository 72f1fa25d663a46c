package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

// IsNumeric reports whether s parses as a finite number.
// Empty strings, free text and the NaN/Inf spellings are not numeric.
func IsNumeric(s string) bool {
	_, ok := parseFinite(s)
	return ok
}

// ParseMark converts a cell into a mark; non-numeric cells become absent.
func ParseMark(s string) models.Mark {
	v, ok := parseFinite(s)
	if !ok {
		return models.Absent()
	}
	return models.Score(v)
}

// parseFinite attempts to parse a string value as a finite float64.
// Only decimal notation counts: hex, binary and underscore forms such as
// 0x10 or 1_000 are deliberately treated as text, not marks.
func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
