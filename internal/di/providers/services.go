package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/beatmap-server/internal/config"
	"github.com/listenupapp/beatmap-server/internal/logger"
	"github.com/listenupapp/beatmap-server/internal/metrics"
	"github.com/listenupapp/beatmap-server/internal/online"
	"github.com/listenupapp/beatmap-server/internal/overlay"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/service"
)

// OnlineClientHandle wraps the online API client.
type OnlineClientHandle struct {
	*online.Client
}

// Shutdown implements do.Shutdownable.
func (h *OnlineClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideOnlineClient provides the online beatmap API client.
func ProvideOnlineClient(i do.Injector) (*OnlineClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := online.New(online.ClientConfig{
		BaseURL:           cfg.Online.BaseURL,
		AccessToken:       cfg.Online.AccessToken,
		RequestsPerSecond: cfg.Online.RequestsPerSecond,
		Burst:             cfg.Online.Burst,
		Timeout:           cfg.Online.Timeout,
	}, log.WithField("component", "online").Logger)
	if err != nil {
		return nil, err
	}

	if cfg.Online.AccessToken == "" {
		log.Warn("No online access token configured, requests are anonymous")
	}

	return &OnlineClientHandle{Client: client}, nil
}

// ProvideMetrics provides the Prometheus collector, or nil when metrics are disabled.
func ProvideMetrics(i do.Injector) (*metrics.Collector, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Server.MetricsEnabled {
		return nil, nil
	}
	return metrics.NewCollector("beatmap_server"), nil
}

// ProvidePresenter provides the overlay state shared with the HTTP API.
func ProvidePresenter(i do.Injector) (*overlay.Presenter, error) {
	log := do.MustInvoke[*logger.Logger](i)
	collector := do.MustInvoke[*metrics.Collector](i)
	return overlay.NewPresenter(log.Logger).WithMetrics(collector), nil
}

// ProvideBeatmapSetService provides the beatmap set service.
func ProvideBeatmapSetService(i do.Injector) (*service.BeatmapSetService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*OnlineClientHandle](i)
	rulesets := do.MustInvoke[*ruleset.Registry](i)
	library := do.MustInvoke[*LibraryHandle](i)
	presenter := do.MustInvoke[*overlay.Presenter](i)
	collector := do.MustInvoke[*metrics.Collector](i)

	display := overlay.Multi{presenter}
	// Echo shown sets to the console while developing.
	if cfg.App.Environment == "development" {
		display = append(display, overlay.NewTerminal(os.Stdout, false))
	}

	return service.NewBeatmapSetService(
		client.Client,
		rulesets,
		library.Store,
		display,
		log.Logger,
	).WithMetrics(collector), nil
}
