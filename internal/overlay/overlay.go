// Package overlay displays converted beatmap sets.
//
// An Overlay only reads the graph it is given: the set's beatmaps must already
// be attached (see domain.BeatmapSet.CheckLinks) and rulesets resolved.
package overlay

import "github.com/listenupapp/beatmap-server/internal/domain"

// Overlay displays a beatmap set.
type Overlay interface {
	Show(set *domain.BeatmapSet)
}

// Multi fans a set out to several overlays in order.
type Multi []Overlay

// Show implements Overlay.
func (m Multi) Show(set *domain.BeatmapSet) {
	for _, o := range m {
		o.Show(set)
	}
}
