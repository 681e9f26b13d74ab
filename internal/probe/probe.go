// Package probe answers whether a candidate asset URL exists. A probe
// never fails: anything other than a confirmed hit counts as absent.
package probe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Checker reports whether the resource at url can be loaded.
type Checker interface {
	Exists(ctx context.Context, url string) bool
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, url string) bool

// Exists calls f(ctx, url).
func (f CheckerFunc) Exists(ctx context.Context, url string) bool {
	return f(ctx, url)
}

// Cache memoizes exact-URL results of an underlying Checker. Concurrent
// checks of the same URL share a single underlying probe.
type Cache struct {
	next    Checker
	log     *zap.Logger
	timeout time.Duration
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
	mu      sync.RWMutex
	known   map[string]entry
	probes  int
}

type entry struct {
	found bool
	at    time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithProbeTimeout bounds each shared underlying probe. Defaults to
// DefaultTimeout.
func WithProbeTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTTL expires cached results after d so that files appearing or
// disappearing are eventually seen without an explicit Invalidate.
// Zero keeps results until invalidated.
func WithTTL(d time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = d }
}

// NewCache wraps next with a memoizing cache.
func NewCache(next Checker, logger *zap.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		next:    next,
		log:     logger.Named("probe-cache"),
		timeout: DefaultTimeout,
		now:     time.Now,
		known:   make(map[string]entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Exists returns the cached result for url, probing on first use.
//
// The shared probe runs detached from ctx under the cache's own timeout,
// so one caller giving up does not turn the answer into a miss for the
// others waiting on it. A caller whose ctx ends first gets false.
// Misses from probes that hit the timeout are not cached.
func (c *Cache) Exists(ctx context.Context, url string) bool {
	if found, ok := c.lookup(url); ok {
		return found
	}
	if ctx.Err() != nil {
		return false
	}

	ch := c.group.DoChan(url, func() (interface{}, error) {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		found := c.next.Exists(pctx, url)
		c.mu.Lock()
		c.probes++
		if found || pctx.Err() == nil {
			c.known[url] = entry{found: found, at: c.now()}
		}
		c.mu.Unlock()
		return found, nil
	})

	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

func (c *Cache) lookup(url string) (found, ok bool) {
	c.mu.RLock()
	e, hit := c.known[url]
	c.mu.RUnlock()
	if !hit {
		return false, false
	}
	if c.ttl > 0 && c.now().Sub(e.at) >= c.ttl {
		return false, false
	}
	return e.found, true
}

// Invalidate drops the cached result for url.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	delete(c.known, url)
	c.mu.Unlock()
	c.log.Debug("invalidated", zap.String("url", url))
}

// Reset drops every cached result.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.known = make(map[string]entry)
	c.mu.Unlock()
	c.log.Debug("reset")
}

// Len returns the number of cached URLs, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.known)
}

// Probes returns how many underlying probes the cache has issued.
func (c *Cache) Probes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.probes
}
