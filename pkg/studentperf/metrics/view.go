package metrics

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

// SortBy selects the ordering of students in a view.
type SortBy string

const (
	// SortNone keeps input order.
	SortNone SortBy = "none"
	// SortAverageDesc orders by average, highest first.
	SortAverageDesc SortBy = "avg_desc"
	// SortAverageAsc orders by average, lowest first.
	SortAverageAsc SortBy = "avg_asc"
	// SortName orders by name using locale-aware collation.
	SortName SortBy = "name"
)

// ErrUnknownSort is returned by ParseSortBy for an unrecognized mode.
var ErrUnknownSort = errors.New("unknown sort mode")

// ParseSortBy validates a sort mode name. An empty string means SortNone.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.TrimSpace(s)) {
	case "", SortNone:
		return SortNone, nil
	case SortAverageDesc:
		return SortAverageDesc, nil
	case SortAverageAsc:
		return SortAverageAsc, nil
	case SortName:
		return SortName, nil
	}
	return "", fmt.Errorf("%w: %q (must be none, avg_desc, avg_asc or name)", ErrUnknownSort, s)
}

// ViewOptions configures filtering and ordering of students.
type ViewOptions struct {
	// MinAverage drops students whose average is below it.
	MinAverage float64
	SortBy     SortBy
	// Locale drives name collation; the root collation is used when unset.
	Locale language.Tag
}

// ParseMinAverage reads a minimum-average input. Blank, non-numeric and
// NaN input all mean 0.
func ParseMinAverage(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// View returns a copy of m whose students are filtered and sorted per opts.
// Class aggregates are carried over unchanged and m is left untouched.
func View(m models.ClassMetrics, opts ViewOptions) (models.ClassMetrics, error) {
	var all []models.StudentRecord
	if err := deepcopy.Copy(&all, &m.Students); err != nil {
		return models.ClassMetrics{}, fmt.Errorf("copy students: %w", err)
	}

	students := make([]models.StudentRecord, 0, len(all))
	for _, s := range all {
		if s.Average >= opts.MinAverage {
			students = append(students, s)
		}
	}

	switch opts.SortBy {
	case SortAverageDesc:
		slices.SortStableFunc(students, func(a, b models.StudentRecord) int {
			return cmp.Compare(b.Average, a.Average)
		})
	case SortAverageAsc:
		slices.SortStableFunc(students, func(a, b models.StudentRecord) int {
			return cmp.Compare(a.Average, b.Average)
		})
	case SortName:
		col := collate.New(opts.Locale)
		slices.SortStableFunc(students, func(a, b models.StudentRecord) int {
			return col.CompareString(a.Name, b.Name)
		})
	case SortNone, "":
	default:
		return models.ClassMetrics{}, fmt.Errorf("%w: %q", ErrUnknownSort, opts.SortBy)
	}

	out := m
	out.SubjectNames = slices.Clone(m.SubjectNames)
	out.GradeDistribution = slices.Clone(m.GradeDistribution)
	out.Students = students
	return out, nil
}
