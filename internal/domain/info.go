package domain

import "time"

// BeatmapSetInfo is the read-only view shared by locally known sets and sets
// described by the online service.
//
// Not every source can answer every question. Members returning an error
// report an errors.ErrUnsupported-coded error when the source has no data for
// them, so callers can tell "not available" apart from a real zero.
type BeatmapSetInfo interface {
	GetOnlineID() int
	GetMetadata() *Metadata
	BeatmapCount() int

	DateAdded() (time.Time, error)
	Files() ([]NamedFile, error)
	MaxStarDifficulty() (float64, error)
	MaxLength() (float64, error)
	MaxBPM() (float64, error)
}

// NamedFile is a file belonging to a set, under the name the set uses for it.
type NamedFile struct {
	Filename string `json:"filename"`
	Hash     string `json:"hash"`
}

var _ BeatmapSetInfo = (*BeatmapSet)(nil)
