package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/alloykit/pkg/docs"
	"github.com/platinummonkey/alloykit/pkg/httputil"
	"github.com/platinummonkey/alloykit/pkg/middleware"
	"github.com/platinummonkey/alloykit/pkg/observability"
	"github.com/platinummonkey/alloykit/pkg/swagger"
	"github.com/platinummonkey/alloykit/pkg/workspace"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultMaxBodyBytes caps request bodies when Options leaves it unset
const DefaultMaxBodyBytes = 4 << 20

// Options configures the server. Zero values disable the optional parts.
type Options struct {
	Logger       *observability.Logger
	Metrics      *observability.Metrics
	Gatherer     prometheus.Gatherer
	Health       *observability.HealthChecker
	MaxBodyBytes int64
	// RateLimiter throttles /v1 per client address
	RateLimiter middleware.Limiter
}

// Server is the HTTP API server
type Server struct {
	router   *mux.Router
	handler  http.Handler
	session  *workspace.Session
	markdown *docs.MarkdownExporter
	html     *docs.HTMLExporter
	logger   *observability.Logger
	opts     Options
}

// NewServer creates a server over session and registers its routes
func NewServer(session *workspace.Session, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = observability.NewNopLogger()
	}
	if opts.Health == nil {
		opts.Health = observability.NewHealthChecker("")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		router:   mux.NewRouter(),
		session:  session,
		markdown: docs.NewMarkdownExporter(),
		html:     docs.NewHTMLExporter(),
		logger:   opts.Logger,
		opts:     opts,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.handler = httputil.Chain(
		httputil.RequestIDMiddleware(s.logger),
		httputil.LoggingMiddleware,
		httputil.RecoveryMiddleware,
		httputil.MaxBytesMiddleware(s.opts.MaxBodyBytes),
	)(s.router)

	if s.opts.Metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(s.opts.Metrics))
	}

	// Health and metrics
	s.router.HandleFunc("/healthz", s.opts.Health.Liveness).Methods("GET")
	s.router.HandleFunc("/readyz", s.opts.Health.Readiness).Methods("GET")
	if s.opts.Gatherer != nil {
		s.router.Handle("/metrics", observability.MetricsHandler(s.opts.Gatherer)).Methods("GET")
	}

	// API documentation
	swagger.NewSwaggerHandlers().RegisterRoutes(s.router)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	if s.opts.RateLimiter != nil {
		v1.Use(middleware.RateLimit(s.opts.RateLimiter, s.logger))
	}

	// Stateless analyses
	v1.HandleFunc("/lint", s.lint).Methods("POST")
	v1.HandleFunc("/format", s.format).Methods("POST")
	v1.HandleFunc("/docs", s.docs).Methods("POST")

	// Workspace documents
	v1.HandleFunc("/documents", s.listDocuments).Methods("GET")
	v1.HandleFunc("/documents", s.putDocument).Methods("PUT")
	v1.HandleFunc("/documents", s.closeDocument).Methods("DELETE")
	v1.HandleFunc("/documents/diagnostics", s.documentDiagnostics).Methods("GET")
	v1.HandleFunc("/documents/format", s.formatDocument).Methods("POST")
	v1.HandleFunc("/documents/docs", s.documentDocs).Methods("GET")
}

// Router exposes the underlying router
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler without tracing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Handler returns the server wrapped in OpenTelemetry instrumentation
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.handler, "alloykit",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
