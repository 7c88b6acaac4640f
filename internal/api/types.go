package api

import (
	"time"

	"github.com/listenupapp/beatmap-server/internal/domain"
	"github.com/listenupapp/beatmap-server/internal/store"
)

// UserResponse identifies a mapper.
type UserResponse struct {
	ID       int    `json:"id" doc:"Online user id, 0 when unknown"`
	Username string `json:"username" doc:"Display name"`
}

// RulesetResponse describes a game mode.
type RulesetResponse struct {
	ID        int    `json:"id" doc:"Stable ruleset id"`
	ShortName string `json:"short_name" doc:"Short name such as mania"`
	Name      string `json:"name" doc:"Display name"`
	Available bool   `json:"available" doc:"Whether beatmaps of this ruleset can be converted"`
}

// BeatmapResponse is a single difficulty of a set.
type BeatmapResponse struct {
	OnlineID          int             `json:"online_id" doc:"Online beatmap id"`
	Version           string          `json:"version" doc:"Difficulty name"`
	StarDifficulty    float64         `json:"star_difficulty" doc:"Star rating"`
	Ruleset           RulesetResponse `json:"ruleset" doc:"Ruleset the beatmap is played under"`
	CircleSize        float32         `json:"circle_size"`
	DrainRate         float32         `json:"drain_rate"`
	OverallDifficulty float32         `json:"overall_difficulty"`
	ApproachRate      float32         `json:"approach_rate"`
}

// CoversResponse lists cover image URLs.
type CoversResponse struct {
	Cover     string `json:"cover,omitempty"`
	Card      string `json:"card,omitempty"`
	List      string `json:"list,omitempty"`
	SlimCover string `json:"slim_cover,omitempty"`
}

// OnlineInfoResponse holds attributes that only exist online.
type OnlineInfoResponse struct {
	Covers             CoversResponse `json:"covers"`
	PreviewURL         string         `json:"preview_url,omitempty"`
	PlayCount          int            `json:"play_count"`
	FavouriteCount     int            `json:"favourite_count"`
	BPM                float64        `json:"bpm"`
	HasExplicitContent bool           `json:"explicit"`
	HasVideo           bool           `json:"video"`
	HasStoryboard      bool           `json:"storyboard"`
	Submitted          time.Time      `json:"submitted"`
	Ranked             *time.Time     `json:"ranked,omitempty"`
	LastUpdated        *time.Time     `json:"last_updated,omitempty"`
	DownloadDisabled   bool           `json:"download_disabled"`
	Genre              string         `json:"genre,omitempty"`
	Language           string         `json:"language,omitempty"`
}

// BeatmapSetResponse is a converted beatmap set.
type BeatmapSetResponse struct {
	OnlineID          int                 `json:"online_id" doc:"Online beatmap set id"`
	Title             string              `json:"title"`
	TitleUnicode      string              `json:"title_unicode,omitempty"`
	Artist            string              `json:"artist"`
	ArtistUnicode     string              `json:"artist_unicode,omitempty"`
	Author            UserResponse        `json:"author" doc:"Mapper of the set"`
	Source            string              `json:"source,omitempty"`
	Tags              []string            `json:"tags" doc:"Individual tag terms"`
	Status            string              `json:"status" doc:"Ranking status name"`
	Ratings           []int               `json:"ratings" doc:"Raw rating histogram"`
	MaxStarDifficulty *float64            `json:"max_star_difficulty,omitempty" doc:"Highest star rating, absent for a set without beatmaps"`
	OnlineInfo        *OnlineInfoResponse `json:"online_info,omitempty"`
	Beatmaps          []BeatmapResponse   `json:"beatmaps"`
}

// SavedBeatmapSetResponse is a library entry.
type SavedBeatmapSetResponse struct {
	BeatmapSet BeatmapSetResponse `json:"beatmap_set"`
	SavedAt    time.Time          `json:"saved_at" doc:"When the set was last saved"`
}

func toRulesetResponse(r *domain.Ruleset) RulesetResponse {
	if r == nil {
		return RulesetResponse{}
	}
	return RulesetResponse{
		ID:        r.ID,
		ShortName: r.ShortName,
		Name:      r.Name,
		Available: r.Available,
	}
}

func toBeatmapSetResponse(set *domain.BeatmapSet) BeatmapSetResponse {
	resp := BeatmapSetResponse{
		OnlineID: set.OnlineID,
		Status:   set.Status.String(),
		Tags:     []string{},
		Ratings:  []int{},
		Beatmaps: make([]BeatmapResponse, 0, len(set.Beatmaps)),
	}

	if md := set.Metadata; md != nil {
		resp.Title = md.Title
		resp.TitleUnicode = md.TitleUnicode
		resp.Artist = md.Artist
		resp.ArtistUnicode = md.ArtistUnicode
		resp.Author = UserResponse{ID: md.Author.ID, Username: md.Author.Username}
		resp.Source = md.Source
		if terms := md.TagTerms(); len(terms) > 0 {
			resp.Tags = terms
		}
	}

	if set.Metrics != nil && set.Metrics.Ratings != nil {
		resp.Ratings = set.Metrics.Ratings
	}

	if stars, err := set.MaxStarDifficulty(); err == nil {
		resp.MaxStarDifficulty = &stars
	}

	if info := set.OnlineInfo; info != nil {
		resp.OnlineInfo = &OnlineInfoResponse{
			Covers: CoversResponse{
				Cover:     info.Covers.Cover,
				Card:      info.Covers.Card,
				List:      info.Covers.List,
				SlimCover: info.Covers.SlimCover,
			},
			PreviewURL:         info.Preview,
			PlayCount:          info.PlayCount,
			FavouriteCount:     info.FavouriteCount,
			BPM:                info.BPM,
			HasExplicitContent: info.HasExplicitContent,
			HasVideo:           info.HasVideo,
			HasStoryboard:      info.HasStoryboard,
			Submitted:          info.Submitted,
			Ranked:             info.Ranked,
			LastUpdated:        info.LastUpdated,
			DownloadDisabled:   info.Availability.DownloadDisabled,
			Genre:              info.Genre.Name,
			Language:           info.Language.Name,
		}
	}

	for _, b := range set.Beatmaps {
		resp.Beatmaps = append(resp.Beatmaps, BeatmapResponse{
			OnlineID:          b.OnlineID,
			Version:           b.Version,
			StarDifficulty:    b.StarDifficulty,
			Ruleset:           toRulesetResponse(b.Ruleset),
			CircleSize:        b.Difficulty.CircleSize,
			DrainRate:         b.Difficulty.DrainRate,
			OverallDifficulty: b.Difficulty.OverallDifficulty,
			ApproachRate:      b.Difficulty.ApproachRate,
		})
	}

	return resp
}

func toSavedResponse(saved *store.SavedBeatmapSet) SavedBeatmapSetResponse {
	return SavedBeatmapSetResponse{
		BeatmapSet: toBeatmapSetResponse(saved.Set),
		SavedAt:    saved.SavedAt,
	}
}
