package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/weftdb/weftgraph/pkg/graphstore"
)

// Config holds the HTTP server's tunables. Authentication is
// deliberately absent: the causal-reasoning graph has no authN/authZ
// in scope, unlike the Neo4j-compatible surface this package's
// structure is grounded on.
type Config struct {
	Address         string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns reasonable development defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the JSON-over-HTTP adapter in front of a graphstore.Store.
type Server struct {
	config   *Config
	store    *graphstore.Store
	listener net.Listener
	http     *http.Server
}

// New builds a Server bound to store. The server is not started until
// Start is called.
func New(store *graphstore.Store, config *Config) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{config: config, store: store}, nil
}

// Start binds the configured address and begins serving in a
// background goroutine. It returns once the listener is open.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Address, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener

	handler := s.recoveryMiddleware(s.loggingMiddleware(s.buildRouter()))
	s.http = &http.Server{
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// to drain until ctx is done. Config.ShutdownTimeout is not read here;
// the caller bounds the wait through ctx.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Addr returns the server's bound address, or "" if not yet started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) buildRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/v1/hypotheses", s.handleMergeHypothesis)
	mux.HandleFunc("/v1/graph", s.handleGetMainGraph)

	mux.HandleFunc("/v1/incidents", s.handleCreateIncident)
	mux.HandleFunc("/v1/incidents/", s.handleIncidentSubroute)

	return mux
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		if r.URL.Path != "/health" {
			log.Printf("%s %s %d %s", r.Method, r.URL.Path, wrapped.status, time.Since(start))
		}
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				log.Printf("panic: %v\n%s", rec, buf[:n])
				writeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func readJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorResponse is the wire form of any non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err to an HTTP status: a ValidationError is a client
// mistake (400), an IncidentNotFoundError names a missing resource
// (404), and any other error is written with fallbackStatus as chosen
// by the calling handler.
func writeError(w http.ResponseWriter, fallbackStatus int, err error) {
	status := fallbackStatus

	var validationErr *ValidationError
	var incidentErr *graphstore.IncidentNotFoundError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &incidentErr):
		status = http.StatusNotFound
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
