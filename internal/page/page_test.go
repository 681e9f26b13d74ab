package page

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/errs"
	"showcase/internal/resolver"
)

const projectPage = `<!doctype html>
<html><body>
<div class="project-page">
  <div class="image-container">
    <img id="project-image" class="project-image" src="/images/InfiniteRoadsPreview.jpg"
         data-project-name="InfiniteRoads" data-image-count="6"
         data-video-url="https://www.youtube.com/embed/roads">
  </div>
  <div class="project-details">
    <figcaption>
      <h2 class="game-title"> Infinite   Roads </h2>
      <p class="company-name">Night Drive <b>Studio</b></p>
    </figcaption>
  </div>
</div>
</body></html>`

func TestParseProjectPage(t *testing.T) {
	p, err := Parse(strings.NewReader(projectPage))
	require.NoError(t, err)

	assert.Equal(t, resolver.Request{
		ProjectID:  "InfiniteRoads",
		MaxShots:   6,
		VideoURL:   "https://www.youtube.com/embed/roads",
		PreviewURL: "/images/InfiniteRoadsPreview.jpg",
	}, p.Request())

	require.NotNil(t, p.Container)
	assert.True(t, HasClass(p.Container, ContainerClass))

	require.NotNil(t, p.Hero)
	assert.Equal(t, "Infinite Roads", p.Hero.Title)
	assert.Equal(t, "Night Drive Studio", p.Hero.Subtitle)
}

func TestParseMissingImage(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body><img id="other" src="a.jpg"></body></html>`))
	assert.ErrorIs(t, err, errs.ErrNoProjectImage)
}

func TestRequestBadCount(t *testing.T) {
	for _, count := range []string{"", "six", "-2"} {
		doc := `<img id="project-image" src="p.jpg" data-project-name="a" data-image-count="` + count + `">`
		p, err := Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 0, p.Request().MaxShots, "count %q", count)
		assert.Empty(t, p.Request().VideoURL)
	}
}

func TestRequestCountPrefix(t *testing.T) {
	cases := map[string]int{
		"6px":                     6,
		"6.0":                     6,
		" 7 ":                     7,
		"+3":                      3,
		"12 shots":                12,
		"99999999999999999999999": math.MaxInt,
	}
	for count, want := range cases {
		doc := `<img id="project-image" src="p.jpg" data-project-name="a" data-image-count="` + count + `">`
		p, err := Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, want, p.Request().MaxShots, "count %q", count)
	}
}

func TestNoHeroWithoutCaption(t *testing.T) {
	p, err := Parse(strings.NewReader(`<div class="image-container"><img id="project-image" src="p.jpg"></div>`))
	require.NoError(t, err)
	assert.Nil(t, p.Hero)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "projects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects", "roads.html"), []byte(projectPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "about.html"), []byte(`<p>hi</p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.HTML"), []byte(projectPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte(projectPage), 0o644))

	pages, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.HTML", "projects/roads.html"}, pages)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}
