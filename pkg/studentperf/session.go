package studentperf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/cache"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/output"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/parser"
)

// Snapshot is one loaded dataset: the table as parsed (plus manual rows)
// and the metrics computed from it.
type Snapshot struct {
	Table   models.RawTable     `json:"table"`
	Metrics models.ClassMetrics `json:"metrics"`
}

// Session owns the current dataset. Every successful load or manual entry
// replaces the snapshot as a whole; failed operations leave it untouched.
// A Session is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	current *Snapshot
	// writeMu orders Load and Clear so the snapshot and the cache change
	// together.
	writeMu sync.Mutex

	cache  cache.Store
	logger *slog.Logger
}

// NewSession creates an empty session.
func NewSession(opts Options) *Session {
	return &Session{
		cache:  opts.store(),
		logger: opts.logger(),
	}
}

// Load parses text, computes its metrics and makes it the current dataset.
// The raw text is then cached; a cache failure is logged but does not fail
// the load.
func (s *Session) Load(ctx context.Context, text string) (Snapshot, error) {
	table, m, err := Analyze(text)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected input", slog.String("error", err.Error()))
		return Snapshot{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap := s.replace(table, m)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("subjects", len(m.SubjectNames)),
		slog.Int("students", len(m.Students)))

	if err := s.cache.Set(ctx, text); err != nil {
		s.logger.ErrorContext(ctx, "failed to cache input", slog.String("error", err.Error()))
	}
	return snap, nil
}

// Restore loads the cached input, if any. It reports whether a dataset was
// restored.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	text, ok, err := s.cache.Get(ctx)
	if err != nil {
		return false, NewInputError("cache", err)
	}
	if !ok {
		return false, nil
	}
	if _, err := s.Load(ctx, text); err != nil {
		return false, NewInputError("cache", err)
	}
	return true, nil
}

// Clear drops the current dataset and the cached input.
func (s *Session) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.cache.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	s.logger.InfoContext(ctx, "dataset cleared")
	return nil
}

// Current returns the current snapshot, or ErrNoData.
func (s *Session) Current() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Snapshot{}, ErrNoData
	}
	return cloneSnapshot(*s.current), nil
}

// AddStudent appends a manually entered row and recomputes the metrics.
// marks is a comma-separated list read with the same rules as CSV input.
// With nothing loaded, a header Name,Subject 1..N sized to the entry is
// created. The cache is left alone since it only holds parsed text. An
// entry with neither a name nor any mark is rejected with ErrEmptyInput.
func (s *Session) AddStudent(ctx context.Context, name, marks string) (Snapshot, error) {
	row := parser.ManualRow(name, marks)
	if parser.IsBlankRow(row) {
		return Snapshot{}, ErrEmptyInput
	}

	s.mu.Lock()
	var table models.RawTable
	if s.current != nil {
		table = s.current.Table.Clone()
	} else {
		table = models.RawTable{Headers: syntheticHeaders(len(row) - 1), Rows: [][]string{}}
	}
	table.Rows = append(table.Rows, row)
	snap := Snapshot{Table: table, Metrics: metrics.ComputeTable(table)}
	s.current = &snap
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "student added",
		slog.String("name", row[0]),
		slog.Int("students", len(snap.Metrics.Students)))
	if n := nonNumeric(row[1:]); n > 0 {
		s.logger.WarnContext(ctx, "non-numeric marks recorded as absent",
			slog.String("name", row[0]),
			slog.Int("count", n))
	}
	return cloneSnapshot(snap), nil
}

// View returns the current metrics filtered and sorted per opts. The
// stored metrics are not modified.
func (s *Session) View(opts ViewOptions) (models.ClassMetrics, error) {
	snap, err := s.Current()
	if err != nil {
		return models.ClassMetrics{}, err
	}
	return metrics.View(snap.Metrics, opts)
}

// Export writes the full, unfiltered table as CSV.
func (s *Session) Export(w io.Writer) error {
	snap, err := s.Current()
	if err != nil {
		return err
	}
	return output.WriteCSV(w, snap.Table)
}

func (s *Session) replace(table models.RawTable, m models.ClassMetrics) Snapshot {
	snap := Snapshot{Table: table, Metrics: m}
	s.mu.Lock()
	s.current = &snap
	s.mu.Unlock()
	return cloneSnapshot(snap)
}

func nonNumeric(fields []string) int {
	n := 0
	for _, f := range fields {
		if !parser.IsNumeric(f) {
			n++
		}
	}
	return n
}

func syntheticHeaders(subjects int) []string {
	headers := make([]string, 0, subjects+1)
	headers = append(headers, "Name")
	for i := 1; i <= max(subjects, 1); i++ {
		headers = append(headers, "Subject "+strconv.Itoa(i))
	}
	return headers
}

func cloneSnapshot(snap Snapshot) Snapshot {
	return Snapshot{Table: snap.Table.Clone(), Metrics: snap.Metrics.Clone()}
}
