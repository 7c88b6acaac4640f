package domain

import "time"

// BeatmapSetOnlineInfo holds the attributes of a set that only exist online.
//
// The online client decodes these straight from the service payload, so the
// JSON names are the service's wire names. A converted BeatmapSet points at the
// instance inside the decoded payload rather than holding a copy.
type BeatmapSetOnlineInfo struct {
	Covers             BeatmapSetOnlineCovers       `json:"covers"`
	Preview            string                       `json:"preview_url"`
	HasFavourited      bool                         `json:"has_favourited"`
	PlayCount          int                          `json:"play_count"`
	FavouriteCount     int                          `json:"favourite_count"`
	BPM                float64                      `json:"bpm"`
	HasExplicitContent bool                         `json:"nsfw"`
	HasVideo           bool                         `json:"video"`
	HasStoryboard      bool                         `json:"storyboard"`
	Submitted          time.Time                    `json:"submitted_date"`
	Ranked             *time.Time                   `json:"ranked_date"`
	LastUpdated        *time.Time                   `json:"last_updated"`
	TrackID            *int                         `json:"track_id"`
	Availability       BeatmapSetOnlineAvailability `json:"availability"`
	Genre              BeatmapSetOnlineGenre        `json:"genre"`
	Language           BeatmapSetOnlineLanguage     `json:"language"`
}

// BeatmapSetOnlineCovers lists the cover image URLs of a set.
type BeatmapSetOnlineCovers struct {
	Cover       string `json:"cover"`
	Cover2x     string `json:"cover@2x"`
	Card        string `json:"card"`
	Card2x      string `json:"card@2x"`
	List        string `json:"list"`
	List2x      string `json:"list@2x"`
	SlimCover   string `json:"slimcover"`
	SlimCover2x string `json:"slimcover@2x"`
}

// BeatmapSetOnlineAvailability describes whether a set can be downloaded.
type BeatmapSetOnlineAvailability struct {
	DownloadDisabled bool   `json:"download_disabled"`
	ExternalLink     string `json:"more_information"`
}

// BeatmapSetOnlineGenre is the genre assigned to a set by the service.
type BeatmapSetOnlineGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BeatmapSetOnlineLanguage is the song language assigned to a set by the service.
type BeatmapSetOnlineLanguage struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
