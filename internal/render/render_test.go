package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"showcase/internal/carousel"
	"showcase/internal/errs"
	"showcase/internal/media"
	"showcase/internal/page"
)

const doc = `<html><body>
<div class="image-container"><img id="project-image" src="/images/p.jpg" data-project-name="p" data-image-count="2"></div>
<div class="project-details"><figcaption><h2 class="game-title">Roads</h2><p class="company-name">Studio</p></figcaption></div>
</body></html>`

func parse(t *testing.T) *page.Page {
	t.Helper()
	p, err := page.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return p
}

func view(t *testing.T, items []media.Item, opts ...carousel.Option) carousel.View {
	t.Helper()
	pl, err := carousel.NewPlaylist(items, "/images/p.jpg")
	require.NoError(t, err)
	return carousel.New(pl, opts...).View()
}

func renderString(t *testing.T, p *page.Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	return buf.String()
}

func TestInjectMultiItem(t *testing.T) {
	p := parse(t)
	v := view(t, []media.Item{
		media.NewVideo("https://www.youtube.com/embed/x"),
		media.NewImage("/images/pShot01.jpg", 1),
	})
	require.NoError(t, Inject(p, v, Options{Hero: true}))
	out := renderString(t, p)

	assert.Contains(t, out, `<iframe id="mainImage" src="https://www.youtube.com/embed/x"`)
	assert.Contains(t, out, `allowfullscreen=""`)
	assert.Contains(t, out, `class="nav-panel nav-panel-left suppressed" data-nav="-1" style="pointer-events: none; opacity: 0;"`)
	assert.Contains(t, out, `<span id="currentIndex">1</span> / <span id="totalImages">2</span>`)
	assert.Contains(t, out, `<div class="thumbnail video active" data-index="0"><div class="video-play-icon">▶</div><img src="/images/pShot01.jpg" alt="Video"/></div>`)
	assert.Contains(t, out, `<div class="thumbnail" data-index="1"><img src="/images/pShot01.jpg" alt="Screenshot 2"/></div>`)
	assert.Contains(t, out, `<h1 class="project-hero-title">Roads</h1>`)
	assert.Contains(t, out, `id="project-image"`)
	assert.Contains(t, out, `hidden=""`)

	// The strip follows the container.
	assert.Less(t, strings.Index(out, `class="image-container"`), strings.Index(out, `id="thumbnailStrip"`))
	assert.Less(t, strings.Index(out, `id="image-counter"`), strings.Index(out, `id="thumbnailStrip"`))
}

func TestInjectSingleItemHasNoChrome(t *testing.T) {
	p := parse(t)
	v := view(t, []media.Item{media.NewImage("/images/p.jpg", 0)})
	require.NoError(t, Inject(p, v, Options{}))
	out := renderString(t, p)

	assert.Contains(t, out, `<img id="mainImage" src="/images/p.jpg" alt="Project Screenshot" class="project-image" data-transition="0"/>`)
	assert.NotContains(t, out, "nav-panel")
	assert.NotContains(t, out, "thumbnailStrip")
	assert.NotContains(t, out, "image-counter")
	assert.NotContains(t, out, "project-hero-overlay")
}

func TestInjectTwiceReplaces(t *testing.T) {
	p := parse(t)
	v := view(t, []media.Item{media.NewImage("/images/a.jpg", 1), media.NewImage("/images/b.jpg", 2)}, carousel.WithLightbox())
	require.NoError(t, Inject(p, v, Options{Hero: true}))
	require.NoError(t, Inject(p, v, Options{Hero: true}))
	out := renderString(t, p)

	assert.Equal(t, 1, strings.Count(out, `id="mainImage"`))
	assert.Equal(t, 1, strings.Count(out, `id="thumbnailStrip"`))
	assert.Equal(t, 2, strings.Count(out, `nav-panel `))
	assert.Equal(t, 1, strings.Count(out, `id="lightbox"`))
	assert.Equal(t, 1, strings.Count(out, `project-hero-overlay`))
}

func TestInjectNoContainer(t *testing.T) {
	p, err := page.Parse(strings.NewReader(`<img id="project-image" src="p.jpg">`))
	require.NoError(t, err)
	err = Inject(p, view(t, []media.Item{media.NewImage("p.jpg", 0)}), Options{})
	assert.ErrorIs(t, err, errs.ErrNoContainer)
}

func TestPanelsDisabledAtEdges(t *testing.T) {
	prev, next := Panels(carousel.Nav{PrevDisabled: true})
	assert.Equal(t, "nav-panel nav-panel-left disabled", page.Attr(prev, "class"))
	assert.Equal(t, "nav-panel nav-panel-right", page.Attr(next, "class"))
	assert.Empty(t, page.Attr(prev, "style"))
}

func TestLightboxMarkup(t *testing.T) {
	closed := Lightbox(carousel.Lightbox{Enabled: true})
	assert.Nil(t, closed.FirstChild)

	open := Lightbox(carousel.Lightbox{Enabled: true, Open: true, URL: "/images/b.jpg", Position: 1, Total: 2, NextDisabled: true})
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, open))
	out := buf.String()
	assert.Contains(t, out, `src="/images/b.jpg"`)
	assert.Contains(t, out, `class="lightbox-next disabled"`)
	assert.Contains(t, out, `<div class="lightbox-counter">2 / 2</div>`)
}
