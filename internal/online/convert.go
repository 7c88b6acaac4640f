package online

import (
	"fmt"
	"time"

	"github.com/listenupapp/beatmap-server/internal/domain"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

// RulesetResolver looks up rulesets by their online id.
// Implementations must be safe for concurrent reads.
type RulesetResolver interface {
	GetRuleset(id int) (*domain.Ruleset, bool)
}

// ToDomainBeatmap converts the beatmap, resolving its ruleset.
// An unknown ruleset is an errors.ErrRulesetNotFound-coded error.
func (b *Beatmap) ToDomainBeatmap(rulesets RulesetResolver) (*domain.Beatmap, error) {
	if rulesets == nil {
		return nil, domainerrors.Internal("no ruleset resolver configured")
	}

	ruleset, ok := rulesets.GetRuleset(b.RulesetID)
	if !ok {
		return nil, domainerrors.RulesetNotFoundf("beatmap %d references unknown ruleset %d", b.OnlineID, b.RulesetID).
			WithDetails(map[string]int{
				"beatmap_id": b.OnlineID,
				"ruleset_id": b.RulesetID,
			})
	}

	return &domain.Beatmap{
		OnlineID:       b.OnlineID,
		StarDifficulty: b.StarRating,
		Version:        b.DifficultyName,
		Ruleset:        ruleset,
		Difficulty: domain.Difficulty{
			CircleSize:        b.CircleSize,
			DrainRate:         b.DrainRate,
			OverallDifficulty: b.OverallDifficulty,
			ApproachRate:      b.ApproachRate,
		},
	}, nil
}

// ToDomainSet converts the set and all of its beatmaps.
//
// Beatmaps keep their payload order and are linked to the returned set. If any
// beatmap fails to convert, no set is returned.
func (s *BeatmapSet) ToDomainSet(rulesets RulesetResolver) (*domain.BeatmapSet, error) {
	ratings := make([]int, len(s.Ratings))
	copy(ratings, s.Ratings)

	set := &domain.BeatmapSet{
		OnlineID:   s.OnlineID,
		Metadata:   s.Metadata(),
		Status:     s.Status,
		Metrics:    &domain.BeatmapSetMetrics{Ratings: ratings},
		OnlineInfo: &s.BeatmapSetOnlineInfo,
	}

	beatmaps := make([]*domain.Beatmap, 0, len(s.Beatmaps))
	for i := range s.Beatmaps {
		b, err := s.Beatmaps[i].ToDomainBeatmap(rulesets)
		if err != nil {
			return nil, fmt.Errorf("convert beatmap set %d: %w", s.OnlineID, err)
		}
		beatmaps = append(beatmaps, b)
	}
	set.AttachBeatmaps(beatmaps)

	return set, nil
}

// BeatmapSetInfo implementation. The online payload carries no local file or
// aggregate data, so those members report ErrUnsupported.

// GetOnlineID implements domain.BeatmapSetInfo.
func (s *BeatmapSet) GetOnlineID() int { return s.OnlineID }

// GetMetadata implements domain.BeatmapSetInfo.
func (s *BeatmapSet) GetMetadata() *domain.Metadata { return s.Metadata() }

// BeatmapCount implements domain.BeatmapSetInfo.
func (s *BeatmapSet) BeatmapCount() int { return len(s.Beatmaps) }

// DateAdded implements domain.BeatmapSetInfo.
func (s *BeatmapSet) DateAdded() (time.Time, error) {
	return time.Time{}, s.unsupported("date added")
}

// Files implements domain.BeatmapSetInfo.
func (s *BeatmapSet) Files() ([]domain.NamedFile, error) {
	return nil, s.unsupported("file listing")
}

// MaxStarDifficulty implements domain.BeatmapSetInfo.
func (s *BeatmapSet) MaxStarDifficulty() (float64, error) {
	return 0, s.unsupported("max star difficulty")
}

// MaxLength implements domain.BeatmapSetInfo.
func (s *BeatmapSet) MaxLength() (float64, error) {
	return 0, s.unsupported("max length")
}

// MaxBPM implements domain.BeatmapSetInfo.
func (s *BeatmapSet) MaxBPM() (float64, error) {
	return 0, s.unsupported("max BPM")
}

func (s *BeatmapSet) unsupported(member string) error {
	return domainerrors.Unsupportedf("online beatmap set %d: %s is not provided by the online service", s.OnlineID, member)
}

var _ domain.BeatmapSetInfo = (*BeatmapSet)(nil)
