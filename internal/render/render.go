// Package render turns carousel views into page markup: the main media
// element, navigation hot-zones, thumbnail strip, counter, lightbox and
// hero overlay.
package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"showcase/internal/carousel"
	"showcase/internal/errs"
	"showcase/internal/media"
	"showcase/internal/page"
)

// Element ids and classes shared with the site stylesheet.
const (
	MainID         = "mainImage"
	StripID        = "thumbnailStrip"
	CounterID      = "image-counter"
	LightboxID     = "lightbox"
	videoAllowList = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
)

// Options selects optional markup.
type Options struct {
	Hero bool
}

// Inject writes the carousel for v into p: the main media element goes
// first in the container, the project image is hidden but kept as the
// data source for client scripts, and the chrome is added when the
// playlist has more than one item.
func Inject(p *page.Page, v carousel.View, opts Options) error {
	if p.Container == nil {
		return errs.ErrNoContainer
	}
	c := p.Container

	// Baking an already baked page replaces the previous carousel.
	removeAll(p.Doc, func(n *html.Node) bool {
		switch page.Attr(n, "id") {
		case MainID, StripID, CounterID, LightboxID:
			return true
		}
		return page.HasClass(n, "nav-panel") || page.HasClass(n, "project-hero-overlay")
	})
	setAttr(p.Image, "hidden", "")
	c.InsertBefore(Media(v), c.FirstChild)

	if v.ShowChrome {
		prev, next := Panels(v.Nav)
		c.AppendChild(prev)
		c.AppendChild(next)
		c.AppendChild(Counter(v))
		insertAfter(c, Strip(v))
	}
	if opts.Hero && p.Hero != nil {
		c.AppendChild(HeroOverlay(*p.Hero))
	}
	if v.Lightbox.Enabled {
		body := findBody(p.Doc)
		if body == nil {
			body = c.Parent
		}
		body.AppendChild(Lightbox(v.Lightbox))
	}
	return nil
}

// Media returns the main display element for the current item.
func Media(v carousel.View) *html.Node {
	dir := strconv.Itoa(v.Direction)
	if v.Item.IsVideo() {
		return el(atom.Iframe,
			"id", MainID,
			"src", v.Item.URL,
			"frameborder", "0",
			"allow", videoAllowList,
			"allowfullscreen", "",
			"class", "project-video",
			"data-transition", dir)
	}
	return el(atom.Img,
		"id", MainID,
		"src", v.Item.URL,
		"alt", "Project Screenshot",
		"class", "project-image",
		"data-transition", dir)
}

// Panels returns the previous and next hot-zones.
func Panels(n carousel.Nav) (prev, next *html.Node) {
	prev = el(atom.Div, "class", panelClass("nav-panel nav-panel-left", n.PrevDisabled, n.Suppressed), "data-nav", "-1")
	next = el(atom.Div, "class", panelClass("nav-panel nav-panel-right", n.NextDisabled, n.Suppressed), "data-nav", "1")
	if n.Suppressed {
		setAttr(prev, "style", "pointer-events: none; opacity: 0;")
		setAttr(next, "style", "pointer-events: none; opacity: 0;")
	}
	return prev, next
}

func panelClass(base string, disabled, suppressed bool) string {
	if suppressed {
		return base + " suppressed"
	}
	if disabled {
		return base + " disabled"
	}
	return base
}

// Counter returns the "k / n" counter element.
func Counter(v carousel.View) *html.Node {
	n := el(atom.Div, "class", "image-counter", "id", CounterID)
	n.AppendChild(withText(el(atom.Span, "id", "currentIndex"), strconv.Itoa(v.Index+1)))
	n.AppendChild(text(" / "))
	n.AppendChild(withText(el(atom.Span, "id", "totalImages"), strconv.Itoa(v.Total)))
	return n
}

// Strip returns the thumbnail strip.
func Strip(v carousel.View) *html.Node {
	strip := el(atom.Div, "class", "carousel-thumbnails", "id", StripID)
	for _, th := range v.Thumbnails {
		classes := []string{"thumbnail"}
		if th.Item.IsVideo() {
			classes = append(classes, "video")
		}
		if th.Active {
			classes = append(classes, "active")
		}
		n := el(atom.Div, "class", strings.Join(classes, " "), "data-index", strconv.Itoa(th.Index))
		if th.Item.IsVideo() {
			n.AppendChild(withText(el(atom.Div, "class", "video-play-icon"), "▶"))
		}
		n.AppendChild(el(atom.Img, "src", th.Poster, "alt", thumbAlt(th)))
		strip.AppendChild(n)
	}
	return strip
}

func thumbAlt(th carousel.Thumbnail) string {
	if th.Item.Type == media.Video {
		return "Video"
	}
	return "Screenshot " + strconv.Itoa(th.Index+1)
}

// Lightbox returns the full-size image overlay. It is rendered hidden
// unless the view has it open.
func Lightbox(lb carousel.Lightbox) *html.Node {
	box := el(atom.Div, "class", "lightbox", "id", LightboxID)
	if !lb.Open {
		setAttr(box, "hidden", "")
		return box
	}
	box.AppendChild(el(atom.Img, "class", "lightbox-image", "src", lb.URL, "alt", "Screenshot"))
	box.AppendChild(el(atom.Button, "class", panelClass("lightbox-prev", lb.PrevDisabled, false), "aria-label", "Previous"))
	box.AppendChild(el(atom.Button, "class", panelClass("lightbox-next", lb.NextDisabled, false), "aria-label", "Next"))
	box.AppendChild(withText(el(atom.Div, "class", "lightbox-counter"), lb.Counter()))
	return box
}

// HeroOverlay returns the title overlay shown on the first item.
func HeroOverlay(h page.Hero) *html.Node {
	n := el(atom.Div, "class", "project-hero-overlay")
	n.AppendChild(withText(el(atom.H1, "class", "project-hero-title"), h.Title))
	n.AppendChild(withText(el(atom.P, "class", "project-hero-company"), h.Subtitle))
	return n
}

func el(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func insertAfter(ref, n *html.Node) {
	if ref.Parent == nil {
		return
	}
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

func removeAll(root *html.Node, match func(*html.Node) bool) {
	var next *html.Node
	for c := root.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && match(c) {
			root.RemoveChild(c)
			continue
		}
		removeAll(c, match)
	}
}

func findBody(n *html.Node) *html.Node {
	if n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
