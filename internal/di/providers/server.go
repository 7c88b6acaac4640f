package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/beatmap-server/internal/api"
	"github.com/listenupapp/beatmap-server/internal/config"
	"github.com/listenupapp/beatmap-server/internal/logger"
	"github.com/listenupapp/beatmap-server/internal/metrics"
	"github.com/listenupapp/beatmap-server/internal/overlay"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.handler.Close()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	beatmapSets := do.MustInvoke[*service.BeatmapSetService](i)
	presenter := do.MustInvoke[*overlay.Presenter](i)
	rulesets := do.MustInvoke[*ruleset.Registry](i)
	collector := do.MustInvoke[*metrics.Collector](i)

	handler := api.NewServer(beatmapSets, presenter, rulesets, api.Options{
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		Metrics:           collector,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
