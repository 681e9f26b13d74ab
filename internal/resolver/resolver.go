// Package resolver discovers which screenshots of a project exist and
// assembles them, with an optional leading video, into a playlist.
package resolver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"showcase/internal/carousel"
	"showcase/internal/errs"
	"showcase/internal/media"
	"showcase/internal/naming"
	"showcase/internal/probe"
)

// Defaults for Options.
const (
	DefaultConcurrency  = 4
	DefaultProbeTimeout = 5 * time.Second
	DefaultMaxShots     = 99
)

// Request describes one carousel to resolve, as read from a project page.
type Request struct {
	ProjectID  string `json:"project"`
	MaxShots   int    `json:"shots"`
	VideoURL   string `json:"video,omitempty"`
	PreviewURL string `json:"preview"`
}

// Validate checks the request before any probing happens.
func (r Request) Validate() error {
	if r.PreviewURL == "" {
		return errs.ErrNoPreview
	}
	return nil
}

// Options configures a Resolver.
type Options struct {
	// Concurrency caps how many shot indices are probed at once.
	// 1 probes strictly in order.
	Concurrency int
	// ProbeTimeout bounds each existence check; an unanswered probe
	// counts as absent.
	ProbeTimeout time.Duration
	// MaxShots caps the shot count of any request. Larger requests are
	// clamped.
	MaxShots int
}

// Resolver turns requests into playlists.
type Resolver struct {
	scheme  *naming.Scheme
	checker probe.Checker
	opts    Options
	log     *zap.Logger
}

// New creates a resolver probing scheme's candidate URLs with checker.
func New(scheme *naming.Scheme, checker probe.Checker, opts Options, logger *zap.Logger) *Resolver {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.MaxShots <= 0 {
		opts.MaxShots = DefaultMaxShots
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		scheme:  scheme,
		checker: checker,
		opts:    opts,
		log:     logger.Named("resolver"),
	}
}

// MaxShots returns the largest shot count a request is resolved with.
func (r *Resolver) MaxShots() int {
	return r.opts.MaxShots
}

// Resolve builds the playlist for req: the video first when present, then
// every found screenshot in ascending shot order, or the preview image
// when nothing else exists. Probe failures only exclude candidates; the
// only error is an invalid request.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*carousel.Playlist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxShots > r.opts.MaxShots {
		r.log.Warn("shot count clamped",
			zap.String("project", req.ProjectID),
			zap.Int("requested", req.MaxShots),
			zap.Int("max", r.opts.MaxShots))
		req.MaxShots = r.opts.MaxShots
	}

	start := time.Now()
	shots := r.detect(ctx, req.ProjectID, req.MaxShots)

	var items []media.Item
	if req.VideoURL != "" {
		items = append(items, media.NewVideo(req.VideoURL))
	}
	for i, u := range shots {
		if u != "" {
			items = append(items, media.NewImage(u, i+1))
		}
	}
	if len(items) == 0 {
		r.log.Info("no media found, using preview",
			zap.String("project", req.ProjectID),
			zap.String("preview", req.PreviewURL))
		items = append(items, media.NewImage(req.PreviewURL, 0))
	}

	pl, err := carousel.NewPlaylist(items, req.PreviewURL)
	if err != nil {
		return nil, fmt.Errorf("assemble playlist: %w", err)
	}

	r.log.Info("resolved",
		zap.String("project", req.ProjectID),
		zap.Int("items", pl.Len()),
		zap.Bool("video", req.VideoURL != ""),
		zap.Duration("took", time.Since(start)))
	return pl, nil
}

// detect returns one slot per shot index holding the found URL, or "" for
// a miss. Slots are indexed by shot so completion order never matters.
func (r *Resolver) detect(ctx context.Context, id string, maxShots int) []string {
	if maxShots <= 0 {
		return nil
	}
	slots := make([]string, maxShots)

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i := range slots {
		shot := i + 1
		g.Go(func() error {
			slots[shot-1] = r.findShot(ctx, id, shot)
			return nil
		})
	}
	_ = g.Wait()
	return slots
}

// findShot tries candidates in priority order and stops at the first hit.
func (r *Resolver) findShot(ctx context.Context, id string, shot int) string {
	for _, u := range r.scheme.Candidates(id, shot) {
		if ctx.Err() != nil {
			break
		}
		if r.exists(ctx, u) {
			r.log.Debug("found", zap.String("project", id), zap.Int("shot", shot), zap.String("url", u))
			return u
		}
	}
	r.log.Debug("not found", zap.String("project", id), zap.Int("shot", shot))
	return ""
}

func (r *Resolver) exists(ctx context.Context, u string) bool {
	pctx, cancel := context.WithTimeout(ctx, r.opts.ProbeTimeout)
	defer cancel()
	return r.checker.Exists(pctx, u)
}
