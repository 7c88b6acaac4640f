package overlay

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/listenupapp/beatmap-server/internal/domain"
)

// Terminal prints a summary of each shown set to a writer.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer

	title  *color.Color
	label  *color.Color
	status *color.Color
	stars  *color.Color
}

// NewTerminal creates a terminal overlay writing to w. Colour output follows
// color.NoColor unless noColor is set.
func NewTerminal(w io.Writer, noColor bool) *Terminal {
	t := &Terminal{
		w:      w,
		title:  color.New(color.Bold, color.FgHiWhite),
		label:  color.New(color.FgHiBlack),
		status: color.New(color.FgCyan),
		stars:  color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{t.title, t.label, t.status, t.stars} {
			c.DisableColor()
		}
	}
	return t
}

// Show implements Overlay.
func (t *Terminal) Show(set *domain.BeatmapSet) {
	if set == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	md := set.Metadata
	if md == nil {
		md = &domain.Metadata{}
	}

	t.title.Fprintf(t.w, "%s - %s\n", displayName(md.ArtistUnicode, md.Artist), displayName(md.TitleUnicode, md.Title))
	t.field("id", fmt.Sprint(set.OnlineID))
	t.field("mapped by", mapper(md.Author))
	t.label.Fprintf(t.w, "  %-10s ", "status")
	t.status.Fprintln(t.w, set.Status.String())
	if md.Source != "" {
		t.field("source", md.Source)
	}
	if terms := md.TagTerms(); len(terms) > 0 {
		t.field("tags", fmt.Sprint(len(terms)))
	}

	fmt.Fprintf(t.w, "  %d difficulties\n", len(set.Beatmaps))
	for _, b := range set.Beatmaps {
		fmt.Fprintf(t.w, "    %-20s %-10s ", b.Version, rulesetName(b.Ruleset))
		t.stars.Fprintf(t.w, "%.2f★\n", b.StarDifficulty)
	}
}

func (t *Terminal) field(name, value string) {
	t.label.Fprintf(t.w, "  %-10s ", name)
	fmt.Fprintln(t.w, value)
}

func displayName(unicode, romanised string) string {
	if unicode != "" && unicode != romanised {
		return fmt.Sprintf("%s (%s)", romanised, unicode)
	}
	return romanised
}

func mapper(u domain.User) string {
	switch {
	case u.Username != "" && u.ID != 0:
		return fmt.Sprintf("%s (#%d)", u.Username, u.ID)
	case u.Username != "":
		return u.Username
	case u.ID != 0:
		return fmt.Sprintf("#%d", u.ID)
	default:
		return "unknown"
	}
}

func rulesetName(r *domain.Ruleset) string {
	if r == nil {
		return "?"
	}
	return r.ShortName
}
