package probe

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSChecker probes assets against a site root on disk, mapping URL paths
// to files below Root. Absolute URLs are matched by path only.
type FSChecker struct {
	Root string
}

// NewFSChecker creates a checker for a built site directory.
func NewFSChecker(root string) *FSChecker {
	return &FSChecker{Root: root}
}

// Exists reports whether raw names a regular file inside Root.
func (c *FSChecker) Exists(ctx context.Context, raw string) bool {
	if ctx.Err() != nil {
		return false
	}
	p, ok := c.Path(raw)
	if !ok {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// Path maps a URL to a file path under Root. It reports false when the
// URL cannot be parsed or would escape Root.
func (c *FSChecker) Path(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := path.Clean("/" + u.Path)
	return filepath.Join(c.Root, filepath.FromSlash(clean)), true
}
