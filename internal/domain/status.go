package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// BeatmapSetOnlineStatus is the ranking state of a set on the online service.
type BeatmapSetOnlineStatus int

// The numeric values match the service's integer encoding.
const (
	StatusNone      BeatmapSetOnlineStatus = -3
	StatusGraveyard BeatmapSetOnlineStatus = -2
	StatusWIP       BeatmapSetOnlineStatus = -1
	StatusPending   BeatmapSetOnlineStatus = 0
	StatusRanked    BeatmapSetOnlineStatus = 1
	StatusApproved  BeatmapSetOnlineStatus = 2
	StatusQualified BeatmapSetOnlineStatus = 3
	StatusLoved     BeatmapSetOnlineStatus = 4
)

var statusNames = map[BeatmapSetOnlineStatus]string{
	StatusNone:      "none",
	StatusGraveyard: "graveyard",
	StatusWIP:       "wip",
	StatusPending:   "pending",
	StatusRanked:    "ranked",
	StatusApproved:  "approved",
	StatusQualified: "qualified",
	StatusLoved:     "loved",
}

// ParseBeatmapSetOnlineStatus parses a lower-case status name.
func ParseBeatmapSetOnlineStatus(name string) (BeatmapSetOnlineStatus, bool) {
	for status, n := range statusNames {
		if n == name {
			return status, true
		}
	}
	return StatusNone, false
}

// String returns the service's name for the status.
func (s BeatmapSetOnlineStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// IsValid reports whether s is a known status.
func (s BeatmapSetOnlineStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// MarshalJSON encodes the status by name.
func (s BeatmapSetOnlineStatus) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("unknown beatmap set status %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the status name or its integer value.
func (s *BeatmapSetOnlineStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		status, ok := ParseBeatmapSetOnlineStatus(name)
		if !ok {
			return fmt.Errorf("unknown beatmap set status %q", name)
		}
		*s = status
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("beatmap set status must be a string or integer: %w", err)
	}
	status := BeatmapSetOnlineStatus(n)
	if !status.IsValid() {
		return fmt.Errorf("unknown beatmap set status %d", n)
	}
	*s = status
	return nil
}
