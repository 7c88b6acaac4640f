// Package store persists converted beatmap sets in a Badger database.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/beatmap-server/internal/domain"
)

// RulesetResolver resolves stored ruleset ids back to shared ruleset values.
type RulesetResolver interface {
	GetRuleset(id int) (*domain.Ruleset, bool)
}

// Store wraps a Badger database instance.
type Store struct {
	db       *badger.DB
	logger   *slog.Logger
	rulesets RulesetResolver
}

// New opens the Badger database at path.
// Beatmaps read back from the store get their ruleset from rulesets when it
// resolves, and from the snapshot taken at save time otherwise.
func New(path string, logger *slog.Logger, rulesets RulesetResolver) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return &Store{
		db:       db,
		logger:   logger,
		rulesets: rulesets,
	}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}
