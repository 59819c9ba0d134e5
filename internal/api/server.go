// Package api exposes sentence analysis over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hyperifyio/npchunk/internal/app"
)

// Analyzer parses a sentence and extracts its chunks.
type Analyzer interface {
	Analyze(ctx context.Context, sentence string) (app.Result, error)
}

// DefaultTimeout bounds the work done for one API request.
const DefaultTimeout = 10 * time.Second

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	analyzer Analyzer
	version  string
	timeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithTimeout overrides DefaultTimeout. The request context is cancelled
// when it expires, which stops parse enumeration.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer Analyzer, version string, opts ...Option) *Server {
	s := &Server{analyzer: analyzer, version: version, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))
		r.Post("/parse", s.handleParse)
		r.Post("/chunk", s.handleChunk)
	})

	s.router = r
}
