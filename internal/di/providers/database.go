package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/listenupapp/beatmap-server/internal/config"
	"github.com/listenupapp/beatmap-server/internal/logger"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/store"
	"github.com/listenupapp/beatmap-server/internal/store/sqlite"
)

// RulesetDBHandle wraps the ruleset database with shutdown capability.
type RulesetDBHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *RulesetDBHandle) Shutdown() error {
	return h.Close()
}

// ProvideRulesetDB provides the SQLite ruleset database.
func ProvideRulesetDB(i do.Injector) (*RulesetDBHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	path := cfg.Storage.RulesetDBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ruleset database directory: %w", err)
	}

	db, err := sqlite.Open(path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Ruleset database initialized", "path", path)

	return &RulesetDBHandle{Store: db}, nil
}

// ProvideRulesetRegistry provides the in-memory ruleset catalog.
func ProvideRulesetRegistry(i do.Injector) (*ruleset.Registry, error) {
	db := do.MustInvoke[*RulesetDBHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return ruleset.NewRegistry(context.Background(), db.Store, log.Logger)
}

// LibraryHandle wraps the beatmap set library with shutdown capability.
type LibraryHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *LibraryHandle) Shutdown() error {
	return h.Close()
}

// ProvideLibrary provides the Badger beatmap set library.
func ProvideLibrary(i do.Injector) (*LibraryHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	rulesets := do.MustInvoke[*ruleset.Registry](i)

	db, err := store.New(cfg.Storage.LibraryPath, log.WithField("component", "library").Logger, rulesets)
	if err != nil {
		return nil, err
	}

	log.Info("Library initialized", "path", cfg.Storage.LibraryPath)

	return &LibraryHandle{Store: db}, nil
}
