package carousel

import (
	"go.uber.org/zap"
)

// Keys understood by HandleKey, named as browsers report KeyboardEvent.key.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEscape = "Escape"
)

// DefaultSwipeThreshold is the minimum horizontal travel, in pixels, for a
// touch gesture to count as a swipe.
const DefaultSwipeThreshold = 50

// DisplayFunc is invoked with the new view after every state change.
type DisplayFunc func(View)

// Option configures a Controller.
type Option func(*Controller)

// WithDisplay registers the display-update callback.
func WithDisplay(fn DisplayFunc) Option {
	return func(c *Controller) { c.display = fn }
}

// WithLightbox enables the full-size image overlay.
func WithLightbox() Option {
	return func(c *Controller) { c.lightboxEnabled = true }
}

// WithSwipeThreshold sets the swipe distance in pixels. Non-positive
// values disable swipe navigation.
func WithSwipeThreshold(px float64) Option {
	return func(c *Controller) { c.swipeThreshold = px }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l.Named("carousel")
		}
	}
}

// Controller drives one carousel instance over a completed playlist.
// It mirrors a single page view and is not safe for concurrent use.
type Controller struct {
	pl              *Playlist
	display         DisplayFunc
	lightboxEnabled bool
	swipeThreshold  float64
	log             *zap.Logger

	current int
	images  []int // playlist indices of image items
	boxOpen bool
	boxPos  int // position within images while the lightbox is open
}

// New creates a controller for a resolved playlist.
func New(pl *Playlist, opts ...Option) *Controller {
	c := &Controller{
		pl:             pl,
		swipeThreshold: DefaultSwipeThreshold,
		log:            zap.NewNop(),
		images:         pl.Images(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Playlist returns the controlled playlist.
func (c *Controller) Playlist() *Playlist { return c.pl }

// Current returns the displayed index.
func (c *Controller) Current() int { return c.current }

// Snapshot returns the playlist together with this controller's index.
func (c *Controller) Snapshot() Snapshot {
	s := c.pl.Snapshot()
	s.Current = c.current
	return s
}

// Start emits the initial display for index 0.
func (c *Controller) Start() {
	c.log.Debug("start", zap.Int("items", c.pl.Len()))
	c.emit(0)
}

// View returns the current display state without emitting it.
func (c *Controller) View() View {
	return c.view(0)
}

// Navigate moves by dir (-1 or +1). Moves past either end are ignored.
func (c *Controller) Navigate(dir int) bool {
	next := c.current + dir
	if dir == 0 || !c.pl.inBounds(next) {
		return false
	}
	c.current = next
	c.emit(sign(dir))
	return true
}

// GoTo jumps to index. Out-of-range and current indices are ignored.
func (c *Controller) GoTo(index int) bool {
	if !c.pl.inBounds(index) || index == c.current {
		return false
	}
	dir := sign(index - c.current)
	c.current = index
	c.emit(dir)
	return true
}

// HandleKey applies a keyboard binding. It reports whether the key was
// consumed, in which case the caller should prevent the default action.
func (c *Controller) HandleKey(key string) bool {
	if c.boxOpen {
		switch key {
		case KeyLeft:
			c.LightboxNavigate(-1)
			return true
		case KeyRight:
			c.LightboxNavigate(1)
			return true
		case KeyEscape:
			c.CloseLightbox()
			return true
		}
		return false
	}

	switch key {
	case KeyLeft:
		c.Navigate(-1)
		return true
	case KeyRight:
		c.Navigate(1)
		return true
	}
	return false
}

// HandleSwipe applies a horizontal touch gesture of dx pixels. A leftward
// swipe (negative dx) advances.
func (c *Controller) HandleSwipe(dx float64) bool {
	if c.swipeThreshold <= 0 || abs(dx) < c.swipeThreshold {
		return false
	}
	dir := 1
	if dx > 0 {
		dir = -1
	}
	if c.boxOpen {
		return c.LightboxNavigate(dir)
	}
	return c.Navigate(dir)
}

// OpenLightbox shows the current image full size. It is a no-op when the
// lightbox is disabled or the current item is not an image.
func (c *Controller) OpenLightbox() bool {
	if !c.lightboxEnabled || c.boxOpen || !c.pl.At(c.current).IsImage() {
		return false
	}
	for pos, idx := range c.images {
		if idx == c.current {
			c.boxPos = pos
			break
		}
	}
	c.boxOpen = true
	c.emit(0)
	return true
}

// CloseLightbox hides the overlay.
func (c *Controller) CloseLightbox() bool {
	if !c.boxOpen {
		return false
	}
	c.boxOpen = false
	c.emit(0)
	return true
}

// LightboxOpen reports whether the overlay is showing.
func (c *Controller) LightboxOpen() bool { return c.boxOpen }

// LightboxNavigate pages the overlay through image items only, clamping
// at either end.
func (c *Controller) LightboxNavigate(dir int) bool {
	next := c.boxPos + dir
	if !c.boxOpen || dir == 0 || next < 0 || next >= len(c.images) {
		return false
	}
	c.boxPos = next
	c.emit(sign(dir))
	return true
}

func (c *Controller) emit(dir int) {
	v := c.view(dir)
	c.log.Debug("display",
		zap.Int("index", v.Index),
		zap.Stringer("type", v.Item.Type),
		zap.Bool("lightbox", v.Lightbox.Open))
	if c.display != nil {
		c.display(v)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
