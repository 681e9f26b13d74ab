// Package media provides the carousel's media item model and
// extension-based type detection for screenshots and videos.
package media

import (
	"net/url"
	"path"
	"strings"
)

// Type represents the kind of media item.
type Type int

const (
	Unknown Type = iota
	Video
	Image
)

func (t Type) String() string {
	switch t {
	case Video:
		return "video"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type as its lowercase name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a lowercase type name. Unrecognized names decode
// to Unknown.
func (t *Type) UnmarshalText(b []byte) error {
	switch string(b) {
	case "video":
		*t = Video
	case "image":
		*t = Image
	default:
		*t = Unknown
	}
	return nil
}

// Item is one entry of a carousel playlist.
// Shot is the 1-based screenshot index the image was found for; it is 0
// for the video and for the preview fallback.
type Item struct {
	Type Type   `json:"type"`
	URL  string `json:"url"`
	Shot int    `json:"shot,omitempty"`
}

// NewImage returns an image item found for the given shot index.
func NewImage(u string, shot int) Item {
	return Item{Type: Image, URL: u, Shot: shot}
}

// NewVideo returns an embedded-video item.
func NewVideo(u string) Item {
	return Item{Type: Video, URL: u}
}

// IsVideo reports whether the item is an embedded video.
func (i Item) IsVideo() bool { return i.Type == Video }

// IsImage reports whether the item is an image.
func (i Item) IsImage() bool { return i.Type == Image }

// DefaultExtensions is the probe order for screenshot files.
var DefaultExtensions = []string{".jpg", ".png", ".jpeg"}

// Video file extensions.
var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".webm": true,
	".m4v":  true,
	".ogv":  true,
}

// Image file extensions.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".avif": true,
	".svg":  true,
}

// Detect returns the media type for a path or URL based on extension.
// Query strings and fragments are ignored.
func Detect(p string) Type {
	if u, err := url.Parse(p); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if videoExts[ext] {
		return Video
	}
	if imageExts[ext] {
		return Image
	}
	return Unknown
}

// IsSupported returns true if the path has a recognized media extension.
func IsSupported(p string) bool {
	return Detect(p) != Unknown
}
