// Package studentperf analyzes student marks: it parses CSV text, computes
// per-student and class statistics and keeps the current dataset for the
// CLI and HTTP front ends.
package studentperf

import (
	"log/slog"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/cache"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
)

// ViewOptions configures filtering and sorting of a session's students.
type ViewOptions = metrics.ViewOptions

// Options configures a Session.
type Options struct {
	// Cache stores the last parsed input. If nil, an in-memory store is used.
	Cache cache.Store
	// Logger receives operational logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{
		Cache: cache.NewMemoryStore(),
	}
}

func (o Options) store() cache.Store {
	if o.Cache != nil {
		return o.Cache
	}
	return cache.NewMemoryStore()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
