package api

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/beatmap-server/internal/domain"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/service"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decode[HealthResponse](t, resp).Data
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["library"].Status)
	assert.NotEmpty(t, health.Components["library"].Latency)
	assert.Equal(t, "4 rulesets available", health.Components["rulesets"].Message)
	assert.Equal(t, "idle", health.Components["overlay"].Message)
}

func TestHealthCheck_ReportsOverlay(t *testing.T) {
	ts := setupTestServer(t)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/beatmapsets/7/show").Code)

	health := decode[HealthResponse](t, ts.api.Get("/health")).Data
	assert.Equal(t, "showing beatmap set 7", health.Components["overlay"].Message)
}

func TestHealthCheck_DegradedAndUnhealthy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		rulesets *ruleset.Registry
		want     string
	}{
		{"no library", ruleset.NewStaticRegistry(ruleset.Builtin()...), "degraded"},
		{"no available rulesets", ruleset.NewStaticRegistry(&domain.Ruleset{ID: 9, ShortName: "off"}), "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewBeatmapSetService(&fakeFetcher{}, tt.rulesets, nil, nil, logger)
			s := NewServer(svc, nil, tt.rulesets, Options{}, logger)
			api := humatest.Wrap(t, s.api)

			resp := api.Get("/health")
			require.Equal(t, http.StatusOK, resp.Code)

			health := decode[HealthResponse](t, resp).Data
			assert.Equal(t, tt.want, health.Status)
			assert.Equal(t, "degraded", health.Components["library"].Status)
			assert.Equal(t, "degraded", health.Components["overlay"].Status)
		})
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "0 rulesets", pluralize(0, "ruleset"))
	assert.Equal(t, "1 ruleset", pluralize(1, "ruleset"))
	assert.Equal(t, "3 rulesets", pluralize(3, "ruleset"))
}
