// Package service orchestrates fetching, converting, storing and displaying
// beatmap sets.
package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/beatmap-server/internal/domain"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
	"github.com/listenupapp/beatmap-server/internal/metrics"
	"github.com/listenupapp/beatmap-server/internal/online"
	"github.com/listenupapp/beatmap-server/internal/overlay"
	"github.com/listenupapp/beatmap-server/internal/store"
)

// Fetcher retrieves beatmap sets from the online service.
type Fetcher interface {
	GetBeatmapSet(ctx context.Context, id int) (*online.BeatmapSet, error)
	SearchBeatmapSets(ctx context.Context, params online.SearchParams) ([]*online.BeatmapSet, error)
}

// Library persists converted beatmap sets.
type Library interface {
	SaveBeatmapSet(ctx context.Context, set *domain.BeatmapSet) error
	GetBeatmapSet(ctx context.Context, id int) (*store.SavedBeatmapSet, error)
	ListBeatmapSets(ctx context.Context) ([]*store.SavedBeatmapSet, error)
	ListBeatmapSetsByStatus(ctx context.Context, status domain.BeatmapSetOnlineStatus) ([]*store.SavedBeatmapSet, error)
	DeleteBeatmapSet(ctx context.Context, id int) error
}

// BeatmapSetService orchestrates beatmap set retrieval and display.
type BeatmapSetService struct {
	fetcher  Fetcher
	rulesets online.RulesetResolver
	library  Library
	overlay  overlay.Overlay
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewBeatmapSetService creates a new beatmap set service.
// library and display may be nil; operations needing them then report
// errors.ErrUnsupported.
func NewBeatmapSetService(
	fetcher Fetcher,
	rulesets online.RulesetResolver,
	library Library,
	display overlay.Overlay,
	logger *slog.Logger,
) *BeatmapSetService {
	return &BeatmapSetService{
		fetcher:  fetcher,
		rulesets: rulesets,
		library:  library,
		overlay:  display,
		logger:   logger,
	}
}

// WithMetrics makes the service count the conversions it performs.
func (s *BeatmapSetService) WithMetrics(m *metrics.Collector) *BeatmapSetService {
	s.metrics = m
	return s
}

// Fetch retrieves a set from the online service, converts it and saves it to
// the library. A failed save is logged and does not fail the fetch.
func (s *BeatmapSetService) Fetch(ctx context.Context, id int) (*domain.BeatmapSet, error) {
	s.logger.Debug("fetching beatmap set", "id", id)

	wire, err := s.fetcher.GetBeatmapSet(ctx, id)
	if err != nil {
		return nil, err
	}

	set, err := wire.ToDomainSet(s.rulesets)
	s.metrics.ObserveConversion(err)
	if err != nil {
		return nil, err
	}

	if s.library != nil {
		if err := s.library.SaveBeatmapSet(ctx, set); err != nil {
			s.logger.Warn("failed to save beatmap set",
				"error", err,
				"id", id,
			)
			// Don't fail the request
		}
	}

	return set, nil
}

// Show fetches a set and puts it on the overlay.
func (s *BeatmapSetService) Show(ctx context.Context, id int) (*domain.BeatmapSet, error) {
	if s.overlay == nil {
		return nil, domainerrors.Unsupportedf("no overlay configured")
	}

	set, err := s.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	s.overlay.Show(set)
	return set, nil
}

// Search searches the online catalog and converts the results.
// Results that cannot be converted are logged and left out.
func (s *BeatmapSetService) Search(ctx context.Context, params online.SearchParams) ([]*domain.BeatmapSet, error) {
	s.logger.Debug("searching beatmap sets",
		"query", params.Query,
		"status", params.Status,
	)

	results, err := s.fetcher.SearchBeatmapSets(ctx, params)
	if err != nil {
		return nil, err
	}

	sets := make([]*domain.BeatmapSet, 0, len(results))
	for _, wire := range results {
		if wire == nil {
			s.logger.Warn("skipping empty search result")
			continue
		}
		set, err := wire.ToDomainSet(s.rulesets)
		s.metrics.ObserveConversion(err)
		if err != nil {
			s.logger.Warn("skipping search result",
				"error", err,
				"id", wire.OnlineID,
			)
			continue
		}
		sets = append(sets, set)
	}

	return sets, nil
}

// Saved returns a set from the library.
func (s *BeatmapSetService) Saved(ctx context.Context, id int) (*store.SavedBeatmapSet, error) {
	if s.library == nil {
		return nil, errNoLibrary()
	}
	return s.library.GetBeatmapSet(ctx, id)
}

// ListSaved returns the library, optionally limited to one status.
func (s *BeatmapSetService) ListSaved(ctx context.Context, status *domain.BeatmapSetOnlineStatus) ([]*store.SavedBeatmapSet, error) {
	if s.library == nil {
		return nil, errNoLibrary()
	}
	if status != nil {
		return s.library.ListBeatmapSetsByStatus(ctx, *status)
	}
	return s.library.ListBeatmapSets(ctx)
}

// Forget removes a set from the library.
func (s *BeatmapSetService) Forget(ctx context.Context, id int) error {
	if s.library == nil {
		return errNoLibrary()
	}
	if err := s.library.DeleteBeatmapSet(ctx, id); err != nil {
		return err
	}

	s.logger.Info("beatmap set removed from library", "id", id)
	return nil
}

func errNoLibrary() error {
	return domainerrors.Unsupportedf("no library configured")
}
