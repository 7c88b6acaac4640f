// Package domain contains the core entities of the beatmap server: beatmap sets,
// their beatmaps, shared metadata and the rulesets beatmaps are played under.
package domain

import (
	"fmt"
	"time"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

// BeatmapSet is a bundle of beatmaps sharing one song.
//
// The set owns its metadata and beatmaps. Each beatmap points back at the set
// and at the set's Metadata pointer; use AttachBeatmaps to keep those links
// consistent.
type BeatmapSet struct {
	OnlineID   int                    `json:"online_id"`
	Metadata   *Metadata              `json:"metadata"`
	Status     BeatmapSetOnlineStatus `json:"status"`
	Metrics    *BeatmapSetMetrics     `json:"metrics"`
	OnlineInfo *BeatmapSetOnlineInfo  `json:"online_info,omitempty"`
	Beatmaps   []*Beatmap             `json:"beatmaps"`
}

// BeatmapSetMetrics holds community rating data for a set.
// Ratings is the raw histogram as received, in order; it is not interpreted.
type BeatmapSetMetrics struct {
	Ratings []int `json:"ratings"`
}

// AttachBeatmaps assigns beatmaps to the set, wiring each beatmap's
// back-reference to s and sharing s.Metadata with it. Order is preserved.
func (s *BeatmapSet) AttachBeatmaps(beatmaps []*Beatmap) {
	for _, b := range beatmaps {
		b.BeatmapSet = s
		b.Metadata = s.Metadata
	}
	s.Beatmaps = beatmaps
}

// CheckLinks verifies that every beatmap references this set and shares its metadata.
func (s *BeatmapSet) CheckLinks() error {
	if s.Metadata == nil {
		return domainerrors.Validationf("beatmap set %d has no metadata", s.OnlineID)
	}
	for i, b := range s.Beatmaps {
		if b == nil {
			return domainerrors.Validationf("beatmap set %d: beatmap at index %d is nil", s.OnlineID, i)
		}
		if b.BeatmapSet != s {
			return domainerrors.Validationf("beatmap set %d: beatmap %d does not reference its set", s.OnlineID, b.OnlineID)
		}
		if b.Metadata != s.Metadata {
			return domainerrors.Validationf("beatmap set %d: beatmap %d does not share the set metadata", s.OnlineID, b.OnlineID)
		}
	}
	return nil
}

// String returns a short human readable description.
func (s *BeatmapSet) String() string {
	if s.Metadata == nil {
		return fmt.Sprintf("beatmap set %d", s.OnlineID)
	}
	return fmt.Sprintf("%s - %s (%s)", s.Metadata.Artist, s.Metadata.Title, s.Metadata.Author.Username)
}

// GetOnlineID implements BeatmapSetInfo.
func (s *BeatmapSet) GetOnlineID() int { return s.OnlineID }

// GetMetadata implements BeatmapSetInfo.
func (s *BeatmapSet) GetMetadata() *Metadata { return s.Metadata }

// BeatmapCount implements BeatmapSetInfo.
func (s *BeatmapSet) BeatmapCount() int { return len(s.Beatmaps) }

// DateAdded is not known for sets built from online data.
func (s *BeatmapSet) DateAdded() (time.Time, error) {
	return time.Time{}, domainerrors.Unsupportedf("beatmap set %d: date added is not tracked for online sets", s.OnlineID)
}

// Files is not known for sets built from online data.
func (s *BeatmapSet) Files() ([]NamedFile, error) {
	return nil, domainerrors.Unsupportedf("beatmap set %d: file listing is not available for online sets", s.OnlineID)
}

// MaxStarDifficulty returns the highest star rating among the set's beatmaps.
func (s *BeatmapSet) MaxStarDifficulty() (float64, error) {
	if len(s.Beatmaps) == 0 {
		return 0, domainerrors.NotFoundf("beatmap set %d has no beatmaps", s.OnlineID)
	}
	maxStars := s.Beatmaps[0].StarDifficulty
	for _, b := range s.Beatmaps[1:] {
		maxStars = max(maxStars, b.StarDifficulty)
	}
	return maxStars, nil
}

// MaxLength is not known for sets built from online data.
func (s *BeatmapSet) MaxLength() (float64, error) {
	return 0, domainerrors.Unsupportedf("beatmap set %d: max length is not available for online sets", s.OnlineID)
}

// MaxBPM is not known for sets built from online data.
func (s *BeatmapSet) MaxBPM() (float64, error) {
	return 0, domainerrors.Unsupportedf("beatmap set %d: max BPM is not available for online sets", s.OnlineID)
}
