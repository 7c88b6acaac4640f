package domain

// Beatmap is a single playable chart within a set.
type Beatmap struct {
	OnlineID       int        `json:"online_id"`
	StarDifficulty float64    `json:"star_difficulty"`
	Version        string     `json:"version"` // Difficulty name: "BASIC", "Insane", ...
	Ruleset        *Ruleset   `json:"ruleset"`
	Difficulty     Difficulty `json:"difficulty"`

	// Non-owning links, set by BeatmapSet.AttachBeatmaps.
	BeatmapSet *BeatmapSet `json:"-"`
	Metadata   *Metadata   `json:"-"`
}

// Difficulty holds the difficulty settings of a beatmap.
type Difficulty struct {
	CircleSize        float32 `json:"circle_size"`
	DrainRate         float32 `json:"drain_rate"`
	OverallDifficulty float32 `json:"overall_difficulty"`
	ApproachRate      float32 `json:"approach_rate"`
}
