package domain

// Ruleset is a game mode definition, identified by a stable integer id.
type Ruleset struct {
	ID        int    `json:"id"`
	ShortName string `json:"short_name"` // "osu", "taiko", "fruits", "mania"
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
