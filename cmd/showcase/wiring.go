package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"showcase/internal/carousel"
	"showcase/internal/config"
	"showcase/internal/probe"
	"showcase/internal/resolver"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// newChecker builds the configured existence checker behind a cache.
func newChecker(c *config.Config, log *zap.Logger, opts ...probe.CacheOption) (*probe.Cache, error) {
	var next probe.Checker
	switch c.Probe.Mode {
	case config.ProbeHTTP:
		hc, err := probe.NewHTTPChecker(c.Probe.BaseURL, nil, log)
		if err != nil {
			return nil, err
		}
		next = hc
	default:
		next = probe.NewFSChecker(c.Site.Root)
	}
	opts = append([]probe.CacheOption{probe.WithProbeTimeout(c.ProbeTimeout())}, opts...)
	return probe.NewCache(next, log, opts...), nil
}

// serveCacheOptions expires cached results when the file watcher cannot
// report changes: remote sites, or watching turned off.
func serveCacheOptions(c *config.Config) []probe.CacheOption {
	if c.Probe.Mode == config.ProbeHTTP || !c.Server.Watch {
		return []probe.CacheOption{probe.WithTTL(c.CacheTTL())}
	}
	return nil
}

// newResolver wires the naming scheme, checker and resolver from config.
func newResolver(c *config.Config, log *zap.Logger, opts ...probe.CacheOption) (*resolver.Resolver, *probe.Cache, error) {
	scheme, err := c.Scheme()
	if err != nil {
		return nil, nil, err
	}
	cache, err := newChecker(c, log, opts...)
	if err != nil {
		return nil, nil, err
	}
	return resolver.New(scheme, cache, c.ResolverOptions(), log), cache, nil
}

// controllerOptions maps the carousel config onto controller options.
func controllerOptions(c *config.Config, log *zap.Logger) []carousel.Option {
	opts := []carousel.Option{
		carousel.WithLogger(log),
		carousel.WithSwipeThreshold(c.Carousel.SwipeThreshold),
	}
	if c.Carousel.Lightbox {
		opts = append(opts, carousel.WithLightbox())
	}
	return opts
}

func isInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newProgressBar returns a bar on stderr when it is a terminal, nil otherwise.
func newProgressBar(total int, description string) *progressbar.ProgressBar {
	if !isInteractive(os.Stderr) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func step(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}

func finish(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
