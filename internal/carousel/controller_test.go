package carousel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/errs"
	"showcase/internal/media"
)

const preview = "/images/preview.jpg"

func images(n int) []media.Item {
	items := make([]media.Item, n)
	for i := range items {
		items[i] = media.NewImage("/images/shot"+string(rune('1'+i))+".jpg", i+1)
	}
	return items
}

func withVideo(n int) []media.Item {
	return append([]media.Item{media.NewVideo("https://www.youtube.com/embed/demo")}, images(n)...)
}

// recorder collects every emitted view.
type recorder struct{ views []View }

func (r *recorder) display(v View) { r.views = append(r.views, v) }

func newController(t *testing.T, items []media.Item, opts ...Option) (*Controller, *recorder) {
	t.Helper()
	pl, err := NewPlaylist(items, preview)
	require.NoError(t, err)
	rec := &recorder{}
	return New(pl, append([]Option{WithDisplay(rec.display)}, opts...)...), rec
}

func TestNewPlaylistRejectsEmpty(t *testing.T) {
	_, err := NewPlaylist(nil, preview)
	assert.ErrorIs(t, err, errs.ErrEmptyPlaylist)
}

func TestNewPlaylistRejectsLateVideo(t *testing.T) {
	items := append(images(1), media.NewVideo("v"))
	_, err := NewPlaylist(items, preview)
	assert.Error(t, err)
}

func TestNavigateClampsAtEnd(t *testing.T) {
	c, rec := newController(t, images(4))

	for i := 0; i < 4; i++ {
		c.Navigate(1)
	}
	assert.Equal(t, 3, c.Current())
	assert.Len(t, rec.views, 3)

	assert.False(t, c.Navigate(1))
	assert.Equal(t, 3, c.Current())
	assert.Len(t, rec.views, 3)
}

func TestNavigateBackFromStartIsNoop(t *testing.T) {
	c, rec := newController(t, images(2))

	assert.False(t, c.Navigate(-1))
	assert.Equal(t, 0, c.Current())
	assert.Empty(t, rec.views)
}

func TestGoToSameIndexIsNoop(t *testing.T) {
	c, rec := newController(t, images(3))

	assert.False(t, c.GoTo(0))
	assert.Empty(t, rec.views)

	assert.True(t, c.GoTo(2))
	assert.False(t, c.GoTo(2))
	assert.Len(t, rec.views, 1)
	assert.Equal(t, 1, rec.views[0].Direction)

	assert.False(t, c.GoTo(3))
	assert.False(t, c.GoTo(-1))
	assert.True(t, c.GoTo(0))
	assert.Equal(t, -1, rec.views[1].Direction)
}

func TestDisplayUpdate(t *testing.T) {
	c, rec := newController(t, images(3))
	c.Start()
	c.Navigate(1)

	require.Len(t, rec.views, 2)
	first, v := rec.views[0], rec.views[1]

	assert.Equal(t, 0, first.Direction)
	assert.True(t, first.Nav.PrevDisabled)
	assert.False(t, first.Nav.NextDisabled)

	assert.Equal(t, "2 / 3", v.Counter())
	assert.Equal(t, 1, v.Direction)
	assert.True(t, v.ShowChrome)
	assert.Equal(t, "/images/shot2.jpg", v.Item.URL)
	require.Len(t, v.Thumbnails, 3)
	for i, th := range v.Thumbnails {
		assert.Equal(t, i == 1, th.Active, "thumbnail %d", i)
		assert.Equal(t, i == 1, th.ScrollIntoView, "thumbnail %d", i)
	}
	assert.False(t, v.Nav.PrevDisabled)
	assert.False(t, v.Nav.NextDisabled)

	c.Navigate(1)
	assert.True(t, rec.views[2].Nav.NextDisabled)
}

func TestSingleItemHasNoChrome(t *testing.T) {
	c, _ := newController(t, []media.Item{media.NewImage(preview, 0)})
	v := c.View()
	assert.False(t, v.ShowChrome)
	assert.Empty(t, v.Thumbnails)
	assert.Equal(t, "1 / 1", v.Counter())
	assert.True(t, v.Nav.PrevDisabled)
	assert.True(t, v.Nav.NextDisabled)
}

func TestVideoSuppressesNav(t *testing.T) {
	c, rec := newController(t, withVideo(2))
	c.Start()

	v := rec.views[0]
	assert.True(t, v.Item.IsVideo())
	assert.True(t, v.Nav.Suppressed)
	assert.False(t, v.Nav.PrevDisabled)
	assert.False(t, v.Nav.NextDisabled)

	c.Navigate(1)
	assert.False(t, rec.views[1].Nav.Suppressed)
	assert.False(t, rec.views[1].Nav.PrevDisabled)
}

func TestVideoPoster(t *testing.T) {
	pl, err := NewPlaylist(withVideo(2), preview)
	require.NoError(t, err)
	assert.Equal(t, "/images/shot1.jpg", pl.Poster(0))
	assert.Equal(t, "/images/shot2.jpg", pl.Poster(2))

	only, err := NewPlaylist(withVideo(0), preview)
	require.NoError(t, err)
	assert.Equal(t, preview, only.Poster(0))
}

func TestHandleKey(t *testing.T) {
	c, _ := newController(t, images(3))

	assert.True(t, c.HandleKey(KeyRight))
	assert.Equal(t, 1, c.Current())
	assert.True(t, c.HandleKey(KeyLeft))
	assert.Equal(t, 0, c.Current())

	// Consumed even at the boundary so the page does not scroll.
	assert.True(t, c.HandleKey(KeyLeft))
	assert.Equal(t, 0, c.Current())

	assert.False(t, c.HandleKey("Enter"))
	assert.False(t, c.HandleKey(KeyEscape))
}

func TestHandleSwipe(t *testing.T) {
	c, _ := newController(t, images(3), WithSwipeThreshold(40))

	assert.False(t, c.HandleSwipe(-10))
	assert.True(t, c.HandleSwipe(-80))
	assert.Equal(t, 1, c.Current())
	assert.True(t, c.HandleSwipe(60))
	assert.Equal(t, 0, c.Current())

	off, _ := newController(t, images(3), WithSwipeThreshold(0))
	assert.False(t, off.HandleSwipe(-500))
}

func TestLightboxSkipsVideo(t *testing.T) {
	c, rec := newController(t, withVideo(3), WithLightbox())

	// Not available on the video.
	assert.False(t, c.OpenLightbox())

	c.GoTo(2)
	require.True(t, c.OpenLightbox())
	v := rec.views[len(rec.views)-1]
	assert.True(t, v.Lightbox.Open)
	assert.Equal(t, "/images/shot2.jpg", v.Lightbox.URL)
	assert.Equal(t, "2 / 3", v.Lightbox.Counter())

	assert.True(t, c.HandleKey(KeyLeft))
	v = rec.views[len(rec.views)-1]
	assert.Equal(t, "/images/shot1.jpg", v.Lightbox.URL)
	assert.True(t, v.Lightbox.PrevDisabled)

	// The video is never reached from inside the lightbox.
	assert.False(t, c.LightboxNavigate(-1))
	assert.True(t, c.HandleKey(KeyLeft))
	assert.Equal(t, "/images/shot1.jpg", rec.views[len(rec.views)-1].Lightbox.URL)

	assert.True(t, c.HandleKey(KeyEscape))
	assert.False(t, c.LightboxOpen())
	assert.Equal(t, 2, c.Current())
}

func TestLightboxDisabled(t *testing.T) {
	c, _ := newController(t, images(2))
	assert.False(t, c.OpenLightbox())
	assert.False(t, c.View().Lightbox.Enabled)
	assert.False(t, c.CloseLightbox())
}

func TestControllersShareNoIndex(t *testing.T) {
	pl, err := NewPlaylist(images(3), preview)
	require.NoError(t, err)
	a, b := New(pl), New(pl)

	require.True(t, a.Navigate(1))
	require.True(t, a.Navigate(1))
	assert.Equal(t, 2, a.Current())
	assert.Equal(t, 0, b.Current())

	require.True(t, b.Navigate(1))
	assert.Equal(t, 2, a.Current())
	assert.Equal(t, 1, b.Current())

	assert.Equal(t, 2, a.Snapshot().Current)
	assert.Equal(t, 1, b.Snapshot().Current)
	assert.Equal(t, 0, pl.Snapshot().Current)
}

func TestLightboxFirstPositionIsEncoded(t *testing.T) {
	c, _ := newController(t, images(2), WithLightbox())
	require.True(t, c.OpenLightbox())

	data, err := json.Marshal(c.View().Lightbox)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"position":0`)
	assert.Contains(t, string(data), `"open":true`)
}
