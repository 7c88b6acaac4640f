// Package online decodes beatmap sets from the online service's API and
// converts them into domain entities.
package online

import (
	"github.com/listenupapp/beatmap-server/internal/domain"
)

// BeatmapSet is a beatmap set as described by the online service.
//
// The embedded BeatmapSetOnlineInfo is decoded in place; a converted
// domain.BeatmapSet points at it. Treat a BeatmapSet as read-only once it has
// been converted.
type BeatmapSet struct {
	domain.BeatmapSetOnlineInfo

	OnlineID      int                           `json:"id"`
	Status        domain.BeatmapSetOnlineStatus `json:"status"`
	Ratings       []int                         `json:"ratings"`
	Title         string                        `json:"title"`
	TitleUnicode  string                        `json:"title_unicode"`
	Artist        string                        `json:"artist"`
	ArtistUnicode string                        `json:"artist_unicode"`
	Source        string                        `json:"source"`
	Tags          string                        `json:"tags"`
	Beatmaps      []Beatmap                     `json:"beatmaps"`

	// Author backs both the user_id and creator wire fields.
	// Use the Author* accessors rather than touching it directly.
	Author *domain.User `json:"-"`
}

// Beatmap is a single beatmap within an online BeatmapSet.
type Beatmap struct {
	OnlineID           int                           `json:"id"`
	OnlineBeatmapSetID int                           `json:"beatmapset_id"`
	StarRating         float64                       `json:"difficulty_rating"`
	DifficultyName     string                        `json:"version"`
	RulesetID          int                           `json:"mode_int"`
	Mode               string                        `json:"mode"`
	Status             domain.BeatmapSetOnlineStatus `json:"status"`
	CircleSize         float32                       `json:"cs"`
	DrainRate          float32                       `json:"drain"`
	OverallDifficulty  float32                       `json:"accuracy"`
	ApproachRate       float32                       `json:"ar"`
	Length             float64                       `json:"total_length"` // Seconds
	HitLength          float64                       `json:"hit_length"`
	BPM                float64                       `json:"bpm"`
	CircleCount        int                           `json:"count_circles"`
	SliderCount        int                           `json:"count_sliders"`
	SpinnerCount       int                           `json:"count_spinners"`
	MaxCombo           *int                          `json:"max_combo"`
	Checksum           string                        `json:"checksum"`
	PlayCount          int                           `json:"playcount"`
	PassCount          int                           `json:"passcount"`
	URL                string                        `json:"url"`
}

// AuthorID returns the mapper's user id, or 0 when no author is known.
func (s *BeatmapSet) AuthorID() int {
	if s.Author == nil {
		return 0
	}
	return s.Author.ID
}

// SetAuthorID sets the mapper's user id, keeping any known username.
func (s *BeatmapSet) SetAuthorID(id int) {
	s.author().ID = id
}

// AuthorString returns the mapper's username, or "" when no author is known.
func (s *BeatmapSet) AuthorString() string {
	if s.Author == nil {
		return ""
	}
	return s.Author.Username
}

// SetAuthorString sets the mapper's username, keeping any known user id.
func (s *BeatmapSet) SetAuthorString(username string) {
	s.author().Username = username
}

// author returns the author, creating it on first write.
func (s *BeatmapSet) author() *domain.User {
	if s.Author == nil {
		s.Author = &domain.User{}
	}
	return s.Author
}

// Metadata computes the set's metadata from its wire fields.
// Every call returns a new value; it never modifies s.
func (s *BeatmapSet) Metadata() *domain.Metadata {
	var author domain.User
	if s.Author != nil {
		author = *s.Author
	}

	return &domain.Metadata{
		Title:         s.Title,
		TitleUnicode:  s.TitleUnicode,
		Artist:        s.Artist,
		ArtistUnicode: s.ArtistUnicode,
		Author:        author,
		Source:        s.Source,
		Tags:          s.Tags,
	}
}
