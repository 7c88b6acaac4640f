package domain

import "strings"

// Metadata describes the song and mapper of a beatmap set.
// It is shared by the set and all of its beatmaps.
type Metadata struct {
	Title         string `json:"title"`
	TitleUnicode  string `json:"title_unicode,omitempty"`
	Artist        string `json:"artist"`
	ArtistUnicode string `json:"artist_unicode,omitempty"`
	Author        User   `json:"author"`
	Source        string `json:"source,omitempty"`
	Tags          string `json:"tags,omitempty"` // Space delimited
}

// TagTerms splits the tag string into individual terms.
func (m *Metadata) TagTerms() []string {
	return strings.Fields(m.Tags)
}
