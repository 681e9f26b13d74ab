package carousel

import (
	"fmt"

	"showcase/internal/media"
)

// View is the display state emitted on every update.
type View struct {
	Index int        `json:"index"`
	Total int        `json:"total"`
	Item  media.Item `json:"item"`

	// Direction of the cross-fade: +1 forward, -1 back, 0 for the first
	// render and for lightbox open/close.
	Direction int `json:"direction"`

	// ShowChrome is false for single-item playlists; navigation,
	// thumbnails and counter are only rendered when there is more than one item.
	ShowChrome bool        `json:"show_chrome"`
	Nav        Nav         `json:"nav"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
	Lightbox   Lightbox    `json:"lightbox"`
}

// Counter returns the "k / n" counter text.
func (v View) Counter() string {
	return fmt.Sprintf("%d / %d", v.Index+1, v.Total)
}

// Nav is the state of the previous/next hot-zones.
type Nav struct {
	PrevDisabled bool `json:"prev_disabled"`
	NextDisabled bool `json:"next_disabled"`
	// Suppressed hides both zones so embedded player controls stay reachable.
	Suppressed bool `json:"suppressed"`
}

// Thumbnail is one entry of the thumbnail strip.
type Thumbnail struct {
	Index          int        `json:"index"`
	Item           media.Item `json:"item"`
	Poster         string     `json:"poster"`
	Active         bool       `json:"active"`
	ScrollIntoView bool       `json:"scroll_into_view,omitempty"`
}

// Lightbox is the overlay state. Position and Total count image items only.
type Lightbox struct {
	Enabled      bool   `json:"enabled"`
	Open         bool   `json:"open"`
	URL          string `json:"url,omitempty"`
	Position     int    `json:"position"`
	Total        int    `json:"total,omitempty"`
	PrevDisabled bool   `json:"prev_disabled,omitempty"`
	NextDisabled bool   `json:"next_disabled,omitempty"`
}

// Counter returns the lightbox's "k / n" text over image items.
func (l Lightbox) Counter() string {
	return fmt.Sprintf("%d / %d", l.Position+1, l.Total)
}

func (c *Controller) view(dir int) View {
	pl := c.pl
	cur := pl.At(c.current)
	v := View{
		Index:      c.current,
		Total:      pl.Len(),
		Item:       cur,
		Direction:  dir,
		ShowChrome: pl.Len() > 1,
	}

	if cur.IsVideo() {
		v.Nav.Suppressed = true
	} else {
		v.Nav.PrevDisabled = c.current == 0
		v.Nav.NextDisabled = c.current >= pl.Len()-1
	}

	if v.ShowChrome {
		v.Thumbnails = make([]Thumbnail, pl.Len())
		for i := range v.Thumbnails {
			active := i == c.current
			v.Thumbnails[i] = Thumbnail{
				Index:          i,
				Item:           pl.At(i),
				Poster:         pl.Poster(i),
				Active:         active,
				ScrollIntoView: active,
			}
		}
	}

	v.Lightbox.Enabled = c.lightboxEnabled
	if c.boxOpen {
		v.Lightbox.Open = true
		v.Lightbox.URL = pl.At(c.images[c.boxPos]).URL
		v.Lightbox.Position = c.boxPos
		v.Lightbox.Total = len(c.images)
		v.Lightbox.PrevDisabled = c.boxPos == 0
		v.Lightbox.NextDisabled = c.boxPos >= len(c.images)-1
	}
	return v
}
