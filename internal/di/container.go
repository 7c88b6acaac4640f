// Package di provides dependency injection configuration for the beatmap server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/beatmap-server/internal/config"
	"github.com/listenupapp/beatmap-server/internal/di/providers"
	"github.com/listenupapp/beatmap-server/internal/logger"
	"github.com/listenupapp/beatmap-server/internal/metrics"
	"github.com/listenupapp/beatmap-server/internal/overlay"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Database layer
	do.Provide(injector, providers.ProvideRulesetDB)
	do.Provide(injector, providers.ProvideRulesetRegistry)
	do.Provide(injector, providers.ProvideLibrary)

	// Online layer
	do.Provide(injector, providers.ProvideOnlineClient)

	// Business services
	do.Provide(injector, providers.ProvidePresenter)
	do.Provide(injector, providers.ProvideBeatmapSetService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services, starting the HTTP server last.
func Bootstrap(injector *do.RootScope) (err error) {
	// MustInvoke panics on provider errors; report them instead.
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Collector](injector)
	_ = do.MustInvoke[*providers.RulesetDBHandle](injector)
	_ = do.MustInvoke[*ruleset.Registry](injector)
	_ = do.MustInvoke[*providers.LibraryHandle](injector)
	_ = do.MustInvoke[*providers.OnlineClientHandle](injector)
	_ = do.MustInvoke[*overlay.Presenter](injector)
	_ = do.MustInvoke[*service.BeatmapSetService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
