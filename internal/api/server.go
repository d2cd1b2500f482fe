// Package api serves the layout pipeline over HTTP.
//
// # Endpoints
//
//   - GET  /healthz: liveness and build information
//   - POST /v1/layout: chart definition in, layout JSON out
//   - POST /v1/render?format=svg: chart definition in, rendered artifact out
//
// The request body is a chart definition. Its format follows the input query
// parameter (json, toml or yaml) or, when absent, the Content-Type header.
// Layout options are taken from query parameters: width, height, measurer,
// side_by_side and max_iterations. Render options add format, labels, grid,
// title, detailed and scale.
//
// Responses carry X-Request-ID, X-Run-ID and X-Cache (hit or miss). Errors
// are JSON objects of the form {"error": {"code": ..., "message": ...}}.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

const (
	// DefaultMaxBodySize bounds request bodies.
	DefaultMaxBodySize = 1 << 20

	// DefaultTimeout bounds request handling.
	DefaultTimeout = 30 * time.Second
)

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodySize sets the request body limit in bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server for runner. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBodySize,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
