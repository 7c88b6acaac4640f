// Package metrics exposes Prometheus metrics for the beatmap server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

// Collector holds the metrics of one server instance.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	conversions  *prometheus.CounterVec
	overlayShows prometheus.Counter
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "beatmapset_conversions_total",
				Help:      "Wire beatmap set conversions by result",
			},
			[]string{"result"},
		),
		overlayShows: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "overlay_shows_total",
				Help:      "Total number of beatmap sets put on the overlay",
			},
		),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.conversions,
		c.overlayShows,
	)

	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveConversion counts one conversion. Failures are labelled with the
// lower-cased domain error code, "error" when the error carries none.
func (c *Collector) ObserveConversion(err error) {
	if c == nil {
		return
	}
	c.conversions.WithLabelValues(conversionResult(err)).Inc()
}

// ObserveOverlayShow counts one set put on the overlay.
func (c *Collector) ObserveOverlayShow() {
	if c == nil {
		return
	}
	c.overlayShows.Inc()
}

// Middleware records request counts and durations labelled by chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func conversionResult(err error) string {
	if err == nil {
		return "ok"
	}
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		return strings.ToLower(string(domainErr.Code))
	}
	return "error"
}
