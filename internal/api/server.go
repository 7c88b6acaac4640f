// Package api provides the HTTP API server and handlers for the beatmap server.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/beatmap-server/internal/http/response"
	"github.com/listenupapp/beatmap-server/internal/metrics"
	"github.com/listenupapp/beatmap-server/internal/overlay"
	"github.com/listenupapp/beatmap-server/internal/ratelimit"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/service"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	beatmapSets *service.BeatmapSetService
	presenter   *overlay.Presenter
	rulesets    *ruleset.Registry
	router      *chi.Mux
	api         huma.API
	limiter     *ratelimit.KeyedRateLimiter
	metrics     *metrics.Collector
	origins     []string
	logger      *slog.Logger
}

// Options configures optional server behaviour.
type Options struct {
	// RequestsPerSecond limits inbound requests per client IP. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
	// AllowedOrigins enables CORS for browser overlays. Empty disables CORS.
	AllowedOrigins []string
	// Metrics, when set, records request metrics and serves them on /metrics.
	Metrics *metrics.Collector
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	beatmapSets *service.BeatmapSetService,
	presenter *overlay.Presenter,
	rulesets *ruleset.Registry,
	opts Options,
	logger *slog.Logger,
) *Server {
	s := &Server{
		beatmapSets: beatmapSets,
		presenter:   presenter,
		rulesets:    rulesets,
		router:      chi.NewRouter(),
		metrics:     opts.Metrics,
		origins:     opts.AllowedOrigins,
		logger:      logger,
	}

	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = max(1, int(opts.RequestsPerSecond))
		}
		s.limiter = ratelimit.New(opts.RequestsPerSecond, burst)
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Beatmap Server API", Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	if len(s.origins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	s.router.Use(middleware.Compress(5))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "no route for "+r.URL.Path, s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method+" is not allowed on "+r.URL.Path, s.logger)
	})
}

// setupRoutes registers all huma operations.
func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	s.registerHealthRoutes()
	s.registerBeatmapSetRoutes()
	s.registerOverlayRoutes()
	s.registerLibraryRoutes()
	s.registerRulesetRoutes()
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
