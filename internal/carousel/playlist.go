// Package carousel holds a resolved media playlist and the display
// state machine that pages through it.
package carousel

import (
	"fmt"

	"showcase/internal/errs"
	"showcase/internal/media"
)

// Playlist is the ordered media a carousel displays. Items are fixed at
// construction; the displayed index belongs to each Controller, so one
// playlist can back any number of independent views.
type Playlist struct {
	items   []media.Item
	preview string
}

// NewPlaylist builds a playlist. The preview URL is
// used as the poster for a leading video when no image follows it.
func NewPlaylist(items []media.Item, preview string) (*Playlist, error) {
	if len(items) == 0 {
		return nil, errs.ErrEmptyPlaylist
	}
	for i, it := range items {
		if it.IsVideo() && i != 0 {
			return nil, fmt.Errorf("video item at index %d: only the first item may be a video", i)
		}
	}
	dst := make([]media.Item, len(items))
	copy(dst, items)
	return &Playlist{items: dst, preview: preview}, nil
}

// Items returns a copy of the playlist items in display order.
func (p *Playlist) Items() []media.Item {
	dst := make([]media.Item, len(p.items))
	copy(dst, p.items)
	return dst
}

// Len returns the number of items.
func (p *Playlist) Len() int { return len(p.items) }

// At returns the item at index i.
func (p *Playlist) At(i int) media.Item { return p.items[i] }

// Preview returns the page's fallback preview URL.
func (p *Playlist) Preview() string { return p.preview }

// HasVideo reports whether the playlist leads with a video.
func (p *Playlist) HasVideo() bool { return p.items[0].IsVideo() }

// Images returns the playlist indices of image items, in order.
func (p *Playlist) Images() []int {
	var idx []int
	for i, it := range p.items {
		if it.IsImage() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Poster returns the thumbnail image URL for item i. Images are their own
// poster; a video uses the image right after it, else the preview.
func (p *Playlist) Poster(i int) string {
	it := p.items[i]
	if !it.IsVideo() {
		return it.URL
	}
	if len(p.items) > 1 && p.items[1].IsImage() {
		return p.items[1].URL
	}
	return p.preview
}

func (p *Playlist) inBounds(i int) bool {
	return i >= 0 && i < len(p.items)
}

// Snapshot is the JSON form of a playlist.
type Snapshot struct {
	Items   []media.Item `json:"items"`
	Current int          `json:"current"`
	Preview string       `json:"preview,omitempty"`
}

// Snapshot returns the playlist's serializable state as first shown.
func (p *Playlist) Snapshot() Snapshot {
	return Snapshot{Items: p.Items(), Preview: p.preview}
}
