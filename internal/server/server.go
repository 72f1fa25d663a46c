// Package server exposes a studentperf Session over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/studentperf-go/internal/config"
	"github.com/ukaji3/studentperf-go/pkg/studentperf"
)

// Server wires the HTTP routes to one Session.
type Server struct {
	session *studentperf.Session
	cfg     config.ServerConfig
	logger  *slog.Logger
	metrics *Metrics
	engine  *gin.Engine
}

// New creates a Server. Collectors are registered with reg and served from
// gatherer at /metrics.
func New(session *studentperf.Session, cfg config.ServerConfig, logger *slog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		session: session,
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(reg),
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(logger))
	if cfg.RateLimit > 0 {
		router.Use(rateLimit(cfg.RateLimit, cfg.RateBurst, logger))
	}
	router.Use(limitBody(cfg.MaxBodyBytes))

	api := router.Group("/api")
	{
		api.POST("/parse", s.Parse)
		api.GET("/metrics", s.GetMetrics)
		api.GET("/subjects", s.GetSubjects)
		api.POST("/students", s.AddStudent)
		api.GET("/export", s.Export)
		api.GET("/report", s.Report)
		api.DELETE("/session", s.Clear)
		api.GET("/ping", PingHandler)
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully. The cached
// input, if any, is restored first.
func (s *Server) Run(ctx context.Context) error {
	if restored, err := s.session.Restore(ctx); err != nil {
		s.logger.WarnContext(ctx, "could not restore cached input", slog.String("error", err.Error()))
	} else if restored {
		s.syncGauge()
		s.logger.InfoContext(ctx, "restored cached input")
	}

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) syncGauge() {
	snap, err := s.session.Current()
	if err != nil {
		s.metrics.Students.Set(0)
		return
	}
	s.metrics.Students.Set(float64(len(snap.Metrics.Students)))
}
