// Package config loads showcase settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"showcase/internal/errs"
	"showcase/internal/naming"
	"showcase/internal/resolver"
)

// DefaultPath is where commands look for a config file when none is given.
const DefaultPath = "showcase.yaml"

// DefaultCacheTTL is how long an unwatched server trusts a probe result.
const DefaultCacheTTL = 30 * time.Second

// Probe modes.
const (
	ProbeFS   = "fs"
	ProbeHTTP = "http"
)

// Config holds all showcase configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Naming   NamingConfig   `yaml:"naming"`
	Probe    ProbeConfig    `yaml:"probe"`
	Carousel CarouselConfig `yaml:"carousel"`
	Server   ServerConfig   `yaml:"server"`
	Greeting GreetingConfig `yaml:"greeting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig locates the built site.
type SiteConfig struct {
	Root      string `yaml:"root"`
	ImagesDir string `yaml:"images_dir"` // relative to Root
}

// NamingConfig is the screenshot asset-layout convention.
type NamingConfig struct {
	Base       string   `yaml:"base"`
	Template   string   `yaml:"template"`
	PadWidth   int      `yaml:"pad_width"`
	Variants   []string `yaml:"variants,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
}

// ProbeConfig controls how screenshot existence is checked.
type ProbeConfig struct {
	Mode        string `yaml:"mode"`     // fs or http
	BaseURL     string `yaml:"base_url"` // http mode only
	Timeout     string `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
	MaxShots    int    `yaml:"max_shots"` // ceiling on any request's shot count
	CacheTTL    string `yaml:"cache_ttl"` // result lifetime when the site is not watched
}

// CarouselConfig toggles the optional carousel behaviours.
type CarouselConfig struct {
	Lightbox       bool    `yaml:"lightbox"`
	Hero           bool    `yaml:"hero"`
	SwipeThreshold float64 `yaml:"swipe_threshold"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"`
}

// GreetingConfig locates the persisted greeting rotation state.
type GreetingConfig struct {
	StatePath string `yaml:"state_path"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Root:      "_site",
			ImagesDir: "images",
		},
		Naming: NamingConfig{
			Template: naming.DefaultTemplate,
		},
		Probe: ProbeConfig{
			Mode:        ProbeFS,
			Timeout:     resolver.DefaultProbeTimeout.String(),
			Concurrency: resolver.DefaultConcurrency,
			MaxShots:    resolver.DefaultMaxShots,
			CacheTTL:    DefaultCacheTTL.String(),
		},
		Carousel: CarouselConfig{
			Hero:           true,
			SwipeThreshold: 50,
		},
		Server: ServerConfig{
			Addr:  ":8080",
			Watch: true,
		},
		Greeting: GreetingConfig{
			StatePath: filepath.Join(".showcase", "greeting.json"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SHOWCASE_SITE_ROOT"); v != "" {
		c.Site.Root = v
	}
	if v := os.Getenv("SHOWCASE_BASE_URL"); v != "" {
		c.Probe.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Probe.Mode {
	case ProbeFS:
	case ProbeHTTP:
		if c.Probe.BaseURL == "" {
			return fmt.Errorf("%w: probe.base_url is required in http mode", errs.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown probe.mode %q", errs.ErrInvalidConfig, c.Probe.Mode)
	}
	if c.Probe.BaseURL != "" {
		u, err := url.Parse(c.Probe.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: probe.base_url %q is not an http(s) URL", errs.ErrInvalidConfig, c.Probe.BaseURL)
		}
	}
	if c.Probe.Concurrency < 0 {
		return fmt.Errorf("%w: probe.concurrency must not be negative", errs.ErrInvalidConfig)
	}
	if c.Probe.Timeout != "" {
		if _, err := time.ParseDuration(c.Probe.Timeout); err != nil {
			return fmt.Errorf("%w: probe.timeout: %v", errs.ErrInvalidConfig, err)
		}
	}
	if c.Probe.MaxShots < 0 {
		return fmt.Errorf("%w: probe.max_shots must not be negative", errs.ErrInvalidConfig)
	}
	if c.Probe.CacheTTL != "" {
		if d, err := time.ParseDuration(c.Probe.CacheTTL); err != nil || d < 0 {
			return fmt.Errorf("%w: probe.cache_ttl %q", errs.ErrInvalidConfig, c.Probe.CacheTTL)
		}
	}
	if err := validAddr(c.Server.Addr); err != nil {
		return fmt.Errorf("%w: server.addr: %v", errs.ErrInvalidConfig, err)
	}
	if c.Naming.PadWidth < 0 {
		return fmt.Errorf("%w: naming.pad_width must not be negative", errs.ErrInvalidConfig)
	}
	if _, err := c.Variants(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}
	return nil
}

func validAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}

// CacheTTL returns how long probe results stay fresh when the site is
// not watched. Zero disables expiry.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Probe.CacheTTL)
	if err != nil || d < 0 {
		return DefaultCacheTTL
	}
	return d
}

// ProbeTimeout returns the per-probe bound as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Probe.Timeout)
	if err != nil || d <= 0 {
		return resolver.DefaultProbeTimeout
	}
	return d
}

// Variants parses the configured name variants.
func (c *Config) Variants() ([]naming.Variant, error) {
	out := make([]naming.Variant, 0, len(c.Naming.Variants))
	for _, s := range c.Naming.Variants {
		v, err := naming.ParseVariant(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Scheme compiles the naming convention.
func (c *Config) Scheme() (*naming.Scheme, error) {
	variants, err := c.Variants()
	if err != nil {
		return nil, err
	}
	return naming.New(naming.Options{
		Base:       c.Naming.Base,
		Template:   c.Naming.Template,
		PadWidth:   c.Naming.PadWidth,
		Variants:   variants,
		Extensions: c.Naming.Extensions,
	})
}

// ResolverOptions returns the resolver tuning knobs.
func (c *Config) ResolverOptions() resolver.Options {
	return resolver.Options{
		Concurrency:  c.Probe.Concurrency,
		ProbeTimeout: c.ProbeTimeout(),
		MaxShots:     c.Probe.MaxShots,
	}
}

// ImagesPath returns the absolute-or-relative images directory on disk.
func (c *Config) ImagesPath() string {
	return filepath.Join(c.Site.Root, c.Site.ImagesDir)
}
