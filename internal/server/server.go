package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/loyerbxl/rentwizard/internal/difficulty"
	"github.com/loyerbxl/rentwizard/internal/logging"
	"github.com/loyerbxl/rentwizard/internal/session"
)

// Config holds the server configuration
type Config struct {
	Host          string
	Port          int
	LogLevel      string
	LookupBaseURL string        // Difficulty-index lookup service base URL
	LookupTimeout time.Duration // Per-lookup timeout
	SessionDir    string        // Snapshot directory (empty = in-memory only)
	Debounce      time.Duration // Snapshot save debounce
	MaxAge        time.Duration // Snapshot age ceiling for restores
}

// Server is the rent wizard HTTP API: the step URL contract, the
// session state endpoints and the websocket state stream.
type Server struct {
	config  *Config
	reg     *registry
	lookup  difficulty.Service
	httpSrv *http.Server
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	// Initialize logging
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	var store session.Store
	if config.SessionDir != "" {
		store = session.NewFileStore(config.SessionDir)
	} else {
		store = session.NewMemoryStore()
	}

	client := difficulty.NewClient(config.LookupBaseURL)
	if config.LookupTimeout > 0 {
		client.SetTimeout(config.LookupTimeout)
	}

	return newServer(config, store, client), nil
}

// newServer wires the server with explicit dependencies. Tests inject
// a memory store and a fake lookup service here.
func newServer(config *Config, store session.Store, lookup difficulty.Service) *Server {
	s := &Server{
		config: config,
		reg: newRegistry(store, session.Options{
			Debounce: config.Debounce,
			MaxAge:   config.MaxAge,
		}),
		lookup: lookup,
	}

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/session", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/{sessionID}", s.handleGetSession)
		r.Delete("/{sessionID}", s.handleDeleteSession)
		r.Post("/{sessionID}/actions", s.handleDispatch)
		r.Post("/{sessionID}/calculate", s.handleCalculate)
		r.Get("/{sessionID}/watch", s.handleWatch)
	})

	r.Get("/{locale}/calculateur/bruxelles/step/{stepKey}", s.handleStep)

	return r
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	logging.Info("Starting rent wizard API server",
		zap.String("addr", s.httpSrv.Addr),
		zap.String("lookup_url", s.config.LookupBaseURL),
		zap.String("log_level", s.config.LogLevel),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server, flushing every pending
// session snapshot first.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	err := s.httpSrv.Shutdown(ctx)

	s.reg.closeAll()
	logging.Sync()

	return err
}
