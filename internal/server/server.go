package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"cuesmith/internal/config"
	"cuesmith/internal/generation"
	"cuesmith/internal/logging"
	"cuesmith/internal/runlog"
)

const shutdownTimeout = 5 * time.Second

// Server serves the generation API and holds the data directory lock while
// listening.
type Server struct {
	bind    string
	logger  *slog.Logger
	svc     *generation.Service
	store   *runlog.Store
	maxBody int64
	handler http.Handler

	lockPath string
	lock     *flock.Flock

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

// New wires the HTTP routes. store may be nil, in which case run queries
// fail and health reports the run log as disabled.
func New(cfg *config.Config, svc *generation.Service, store *runlog.Store, logger *slog.Logger) (*Server, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("server requires config and generation service")
	}
	bind := strings.TrimSpace(cfg.Server.Bind)
	if bind == "" {
		return nil, errors.New("server bind address is empty")
	}

	srv := &Server{
		bind:     bind,
		logger:   logging.NewComponentLogger(logger, "api-server"),
		svc:      svc,
		store:    store,
		maxBody:  int64(cfg.Server.MaxBodyMiB) << 20,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/subtitles", srv.handleGenerate)
	mux.HandleFunc("GET /api/runs", srv.handleRuns)
	mux.HandleFunc("GET /api/runs/{id}", srv.handleRun)
	mux.HandleFunc("GET /api/webinars/{id}/subtitles", srv.handleWebinarSubtitles)
	mux.HandleFunc("GET /api/health", srv.handleHealth)

	timeout := time.Duration(cfg.Server.RequestTimeout) * time.Second
	srv.handler = requestMiddleware(srv.logger, timeout, authMiddleware(cfg.Server.Token, mux))
	return srv, nil
}

// Handler returns the routed handler with auth and request middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start acquires the lock, binds the listener, and serves in the
// background until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return errors.New("server already running")
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another cuesmith server is already using %s", s.lockPath)
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock_path", s.lockPath))
	return nil
}

// Addr returns the bound address, or "" when not listening.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and releases the lock. It is safe to call
// more than once.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("api server shutdown", logging.Error(err))
	}
	s.server = nil
	s.listener = nil
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
	s.logger.Info("api server stopped")
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}
