// Package server runs the adapter's HTTP server and sequences the lifecycle
// status around it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/lifecycle"
	"cheddar-hq/adapter/pkg/status"
	"cheddar-hq/adapter/pkg/telemetry/health"
	"cheddar-hq/adapter/pkg/telemetry/metrics"
)

// LifecycleController owns the lifecycle status the server sequences.
type LifecycleController interface {
	lifecycle.Provider
	SetLifecycleStatus(s lifecycle.Status) error
	LastTransition() time.Time
}

// BuildInfo is served on /version.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Dependencies carries the components the server wires together.
type Dependencies struct {
	// Tracker counts requests in progress. Required.
	Tracker *status.Tracker

	// Lifecycle is moved through the startup and shutdown sequence. Required.
	Lifecycle LifecycleController

	// Checker serves the readiness probe. Defaults to a checker with no checks.
	Checker *health.Checker

	// Metrics records request metrics. Optional.
	Metrics *metrics.Collector

	// App serves application routes. Defaults to NewApplicationHandler.
	App http.Handler

	// Build is reported on /version.
	Build BuildInfo

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the adapter's HTTP server.
type Server struct {
	config       *config.Config
	deps         Dependencies
	logger       *slog.Logger
	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	stopOnce     sync.Once
	shutdownOnce sync.Once
	shutdownErr  error
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new adapter server.
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Tracker == nil {
		return nil, errors.New("server requires a tracker")
	}
	if deps.Lifecycle == nil {
		return nil, errors.New("server requires a lifecycle controller")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Checker == nil {
		deps.Checker = health.New(cfg.Telemetry.Health.CheckTimeout)
	}
	if deps.App == nil {
		app, err := NewApplicationHandler(&cfg.Server, deps.Logger)
		if err != nil {
			return nil, err
		}
		deps.App = app
	}

	return &Server{
		config:       cfg,
		deps:         deps,
		logger:       deps.Logger.With("component", "server"),
		shutdownChan: make(chan struct{}),
	}, nil
}

// Start listens on the configured address, moves the lifecycle to RUNNING
// (or PAUSED when start_paused is set) and blocks until ctx is cancelled,
// Stop is called or the listener fails. It then runs Shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:        s.setupRoutes(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	s.logger.Info("adapter server listening", "address", listener.Addr().String())

	ready := lifecycle.Running
	if s.config.Lifecycle.StartPaused {
		ready = lifecycle.Paused
	}
	if err := s.deps.Lifecycle.SetLifecycleStatus(ready); err != nil {
		_ = s.Shutdown(context.Background())
		return fmt.Errorf("failed to set lifecycle status: %w", err)
	}

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		_ = s.Shutdown(context.Background())
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down. It does not wait.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.shutdownChan) })
}

// Shutdown runs the shutdown sequence once:
//
//  1. HALTING_LOW_PRIORITY_EVENTS for the halt grace period, still accepting
//  2. HALTING_HIGH_PRIORITY_EVENTS, new requests rejected, waiting for the
//     in-progress count to reach zero
//  3. HALTED, then the HTTP server is closed
//
// The whole sequence is bounded by the shutdown timeout. Later calls return
// the first call's result. Shutdown on a server that was never started is a
// no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	started := s.httpServer != nil
	s.mu.RUnlock()
	if !started {
		return nil
	}

	s.shutdownOnce.Do(func() {
		lc := s.config.Lifecycle
		s.logger.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String(),
			"halt_grace_period", lc.HaltGracePeriod.String(),
		)

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		var errs []error

		s.transition(lifecycle.HaltingLowPriorityEvents, &errs)
		if lc.HaltGracePeriod > 0 {
			timer := time.NewTimer(lc.HaltGracePeriod)
			select {
			case <-timer.C:
			case <-shutdownCtx.Done():
				timer.Stop()
			}
		}

		s.transition(lifecycle.HaltingHighPriorityEvents, &errs)
		if err := WaitForDrain(shutdownCtx, s.deps.Tracker, lc.DrainPollInterval); err != nil {
			s.logger.Warn("drain did not complete before shutdown timeout",
				"requests_in_progress", s.deps.Tracker.RestRequestsInProgress(),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("drain: %w", err))
		} else {
			s.logger.Info("all requests drained")
		}

		s.transition(lifecycle.Halted, &errs)

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			_ = s.httpServer.Close()
			errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.shutdownErr = errors.Join(errs...)
		s.logger.Info("adapter server stopped")
	})

	return s.shutdownErr
}

func (s *Server) transition(to lifecycle.Status, errs *[]error) {
	if err := s.deps.Lifecycle.SetLifecycleStatus(to); err != nil {
		s.logger.Error("failed to set lifecycle status", "status", to.String(), "error", err)
		*errs = append(*errs, err)
	}
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
