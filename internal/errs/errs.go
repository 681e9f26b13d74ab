// Package errs holds the sentinel errors shared across showcase packages.
package errs

import "errors"

var (
	// ErrNoProjectImage indicates a page has no designated project image element.
	ErrNoProjectImage = errors.New("no project image element")
	// ErrNoContainer indicates a page has no element to inject the carousel into.
	ErrNoContainer = errors.New("no carousel container element")
	// ErrNoPreview indicates a resolve request without a fallback preview URL.
	ErrNoPreview = errors.New("missing preview url")
	// ErrEmptyPlaylist indicates an attempt to build a playlist with no items.
	ErrEmptyPlaylist = errors.New("empty playlist")
	// ErrInvalidTemplate indicates an asset naming template that cannot be parsed or executed.
	ErrInvalidTemplate = errors.New("invalid naming template")
	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("invalid config")
)
