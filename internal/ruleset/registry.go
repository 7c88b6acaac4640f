// Package ruleset keeps the in-memory ruleset catalog used when converting
// online beatmaps.
package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/listenupapp/beatmap-server/internal/domain"
)

// Source loads the persisted ruleset catalog.
type Source interface {
	ListRulesets(ctx context.Context) ([]*domain.Ruleset, error)
}

// Builtin returns the rulesets every installation knows about.
func Builtin() []*domain.Ruleset {
	return []*domain.Ruleset{
		{ID: 0, ShortName: "osu", Name: "osu!", Available: true},
		{ID: 1, ShortName: "taiko", Name: "osu!taiko", Available: true},
		{ID: 2, ShortName: "fruits", Name: "osu!catch", Available: true},
		{ID: 3, ShortName: "mania", Name: "osu!mania", Available: true},
	}
}

// Registry resolves rulesets by id. It is safe for concurrent use; readers
// never observe a partially reloaded catalog.
type Registry struct {
	source Source
	logger *slog.Logger

	mu   sync.RWMutex
	byID map[int]*domain.Ruleset
}

// NewRegistry creates a registry backed by source and loads it once.
func NewRegistry(ctx context.Context, source Source, logger *slog.Logger) (*Registry, error) {
	r := &Registry{
		source: source,
		logger: logger,
		byID:   make(map[int]*domain.Ruleset),
	}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// NewStaticRegistry creates a registry over a fixed list of rulesets.
// Reload is a no-op on a static registry.
func NewStaticRegistry(rulesets ...*domain.Ruleset) *Registry {
	r := &Registry{
		logger: slog.Default(),
		byID:   make(map[int]*domain.Ruleset, len(rulesets)),
	}
	for _, rs := range rulesets {
		r.byID[rs.ID] = rs
	}
	return r
}

// GetRuleset returns the ruleset with the given id.
// Unavailable rulesets are not resolvable.
func (r *Registry) GetRuleset(id int) (*domain.Ruleset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.byID[id]
	if !ok || !rs.Available {
		return nil, false
	}
	return rs, true
}

// All returns every known ruleset, including unavailable ones, ordered by id.
func (r *Registry) All() []*domain.Ruleset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Ruleset, 0, len(r.byID))
	for _, rs := range r.byID {
		out = append(out, rs)
	}
	slices.SortFunc(out, func(a, b *domain.Ruleset) int { return a.ID - b.ID })
	return out
}

// Reload replaces the catalog with the current contents of the source.
func (r *Registry) Reload(ctx context.Context) error {
	if r.source == nil {
		return nil
	}

	rulesets, err := r.source.ListRulesets(ctx)
	if err != nil {
		return fmt.Errorf("load rulesets: %w", err)
	}

	byID := make(map[int]*domain.Ruleset, len(rulesets))
	for _, rs := range rulesets {
		byID[rs.ID] = rs
	}

	r.mu.Lock()
	r.byID = byID
	r.mu.Unlock()

	r.logger.Info("rulesets loaded", "count", len(byID))
	return nil
}
