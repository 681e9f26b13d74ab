// Package page reads carousel inputs from a rendered project page: the
// designated project image, the container the carousel chrome goes into,
// and the caption block used by the hero overlay.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"showcase/internal/errs"
	"showcase/internal/resolver"
)

// Markup hooks the site templates use.
const (
	ImageID        = "project-image"
	ContainerClass = "image-container"
	DetailsClass   = "project-details"
	TitleClass     = "game-title"
	SubtitleClass  = "company-name"

	attrProject = "data-project-name"
	attrCount   = "data-image-count"
	attrVideo   = "data-video-url"
)

// Hero is the title and subtitle shown over the first carousel item.
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Page is a parsed project page.
type Page struct {
	Doc       *html.Node
	Image     *html.Node
	Container *html.Node
	Hero      *Hero
}

// Parse reads an HTML document and locates the carousel hooks.
// A page without the project image returns errs.ErrNoProjectImage.
func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &Page{Doc: doc}
	p.Image = find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Img && Attr(n, "id") == ImageID
	})
	if p.Image == nil {
		return nil, errs.ErrNoProjectImage
	}
	p.Container = find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, ContainerClass)
	})
	p.Hero = findHero(doc)
	return p, nil
}

// Load parses the page at path.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	p, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Request returns the resolve request described by the project image.
// An unparsable or missing shot count is treated as zero.
func (p *Page) Request() resolver.Request {
	return resolver.Request{
		ProjectID:  Attr(p.Image, attrProject),
		MaxShots:   leadingCount(Attr(p.Image, attrCount)),
		VideoURL:   Attr(p.Image, attrVideo),
		PreviewURL: Attr(p.Image, "src"),
	}
}

// leadingCount reads the integer prefix of s, so "6px" and "6.0" are 6.
// Negative or missing numbers are 0; overflow saturates.
func leadingCount(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}

// Render writes the (possibly modified) document.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.Doc)
}

func findHero(doc *html.Node) *Hero {
	details := find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, DetailsClass)
	})
	if details == nil {
		return nil
	}
	caption := find(details, func(n *html.Node) bool { return n.DataAtom == atom.Figcaption })
	if caption == nil {
		return nil
	}
	title := find(caption, func(n *html.Node) bool { return HasClass(n, TitleClass) })
	sub := find(caption, func(n *html.Node) bool { return HasClass(n, SubtitleClass) })
	if title == nil || sub == nil {
		return nil
	}
	return &Hero{Title: Text(title), Subtitle: Text(sub)}
}

// Scan returns the HTML files under root that carry a project image,
// relative to root and sorted.
func Scan(root string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.Contains(data, []byte(ImageID)) {
			return nil
		}
		if _, err := Parse(bytes.NewReader(data)); err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(pages)
	return pages, nil
}

// Attr returns the value of attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n's class list contains class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the trimmed text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// find returns the first node in document order below n matching match.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if hit := find(c, match); hit != nil {
			return hit
		}
	}
	return nil
}
