package overlay

import (
	"log/slog"
	"sync"

	"github.com/listenupapp/beatmap-server/internal/domain"
	"github.com/listenupapp/beatmap-server/internal/metrics"
)

// Presenter holds the set currently on display. It is safe for concurrent use.
type Presenter struct {
	logger  *slog.Logger
	metrics *metrics.Collector

	mu      sync.RWMutex
	current *domain.BeatmapSet
	version uint64
}

// NewPresenter creates an empty presenter.
func NewPresenter(logger *slog.Logger) *Presenter {
	return &Presenter{logger: logger}
}

// WithMetrics makes the presenter count the sets it accepts.
func (p *Presenter) WithMetrics(m *metrics.Collector) *Presenter {
	p.metrics = m
	return p
}

// Show replaces the displayed set. Sets whose links are not wired are
// logged and ignored; the previous set stays on display.
func (p *Presenter) Show(set *domain.BeatmapSet) {
	if set == nil {
		p.logger.Warn("overlay: ignoring nil beatmap set")
		return
	}
	if err := set.CheckLinks(); err != nil {
		p.logger.Warn("overlay: ignoring unlinked beatmap set",
			"id", set.OnlineID,
			"error", err,
		)
		return
	}

	p.mu.Lock()
	p.current = set
	p.version++
	p.mu.Unlock()

	p.metrics.ObserveOverlayShow()
	p.logger.Info("overlay: showing beatmap set",
		"id", set.OnlineID,
		"title", set.String(),
		"beatmaps", len(set.Beatmaps),
	)
}

// Hide clears the display. It reports whether a set was shown.
func (p *Presenter) Hide() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return false
	}
	p.current = nil
	p.version++
	return true
}

// Current returns the displayed set, or nil and false when nothing is shown.
func (p *Presenter) Current() (*domain.BeatmapSet, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.current != nil
}

// Version increments on every change to the display.
func (p *Presenter) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}
