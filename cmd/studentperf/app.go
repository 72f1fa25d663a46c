package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ukaji3/studentperf-go/internal/config"
	"github.com/ukaji3/studentperf-go/internal/logging"
	"github.com/ukaji3/studentperf-go/pkg/studentperf"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/cache"
)

// app holds what every command needs: configuration, a logger and a session
// backed by the configured cache.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   cache.Store
	session *studentperf.Session
	closers []io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if cacheBackend != "" {
		cfg.Cache.Backend = cacheBackend
	}
	if cachePath != "" {
		cfg.Cache.Path = cachePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	store, err := cache.Open(cmd.Context(), cfg.CacheOptions())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	a.store = store
	opts := studentperf.DefaultOptions()
	opts.Cache = store
	opts.Logger = logger
	a.session = studentperf.NewSession(opts)
	return a, nil
}

// Close releases the cache connection and log file.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// load makes the input named by args the session's dataset: a file, "-" for
// stdin, or the cached input when args is empty. It returns the source name.
func (a *app) load(ctx context.Context, cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		restored, err := a.session.Restore(ctx)
		if err != nil {
			return "", err
		}
		if !restored {
			return "", fmt.Errorf("no cached input: %w", studentperf.ErrNoData)
		}
		return "cache", nil
	}

	path := args[0]
	text, err := studentperf.ReadFile(path, cmd.InOrStdin())
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to read input",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if _, err := a.session.Load(ctx, text); err != nil {
		return "", studentperf.NewInputError(path, err)
	}
	if path == "-" {
		return "stdin", nil
	}
	return path, nil
}

// withApp adapts a command body that needs an app into a cobra RunE.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}
