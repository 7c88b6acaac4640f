package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"library":  s.checkLibrary(ctx),
		"rulesets": s.checkRulesets(),
		"overlay":  s.checkOverlay(),
	}

	overall := statusHealthy
	for _, c := range components {
		switch {
		case c.Status == statusUnhealthy:
			overall = statusUnhealthy
		case c.Status == statusDegraded && overall == statusHealthy:
			overall = statusDegraded
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkLibrary verifies the library database answers reads.
func (s *Server) checkLibrary(ctx context.Context) ComponentHealth {
	if s.beatmapSets == nil {
		return ComponentHealth{Status: statusDegraded, Message: "beatmap set service not configured"}
	}

	start := time.Now()

	// Id 0 is never stored; not found means the read went through.
	_, err := s.beatmapSets.Saved(ctx, 0)
	latency := time.Since(start)

	switch {
	case err == nil, errors.Is(err, domainerrors.ErrNotFound):
		return ComponentHealth{Status: statusHealthy, Latency: latency.String()}
	case errors.Is(err, domainerrors.ErrUnsupported):
		return ComponentHealth{Status: statusDegraded, Message: "library not configured"}
	default:
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "library read failed",
		}
	}
}

// checkRulesets verifies at least one ruleset can resolve beatmaps.
func (s *Server) checkRulesets() ComponentHealth {
	if s.rulesets == nil {
		return ComponentHealth{Status: statusUnhealthy, Message: "ruleset registry not configured"}
	}

	available := 0
	for _, r := range s.rulesets.All() {
		if r.Available {
			available++
		}
	}
	if available == 0 {
		return ComponentHealth{Status: statusUnhealthy, Message: "no rulesets available"}
	}

	return ComponentHealth{Status: statusHealthy, Message: pluralize(available, "ruleset") + " available"}
}

// checkOverlay reports what the overlay is showing.
func (s *Server) checkOverlay() ComponentHealth {
	if s.presenter == nil {
		return ComponentHealth{Status: statusDegraded, Message: "overlay not configured"}
	}

	if set, ok := s.presenter.Current(); ok {
		return ComponentHealth{Status: statusHealthy, Message: "showing beatmap set " + strconv.Itoa(set.OnlineID)}
	}
	return ComponentHealth{Status: statusHealthy, Message: "idle"}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
