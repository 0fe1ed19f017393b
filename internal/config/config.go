// Package config loads and validates the docsite configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Mode selects interactive (development) or production behavior. It controls
// draft visibility and cache TTLs.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

var modeNormalizer = newNormalizer(map[string]Mode{
	"development": ModeDevelopment,
	"dev":         ModeDevelopment,
	"production":  ModeProduction,
	"prod":        ModeProduction,
}, ModeProduction)

// NormalizeMode maps a raw mode string to a Mode, defaulting to production.
func NormalizeMode(raw string) Mode {
	return modeNormalizer.normalize(raw)
}

// Config is the root docsite configuration.
type Config struct {
	ContentDir string         `yaml:"content_dir"`
	Mode       Mode           `yaml:"mode,omitempty"`
	Locale     *LocaleConfig  `yaml:"locale,omitempty"`
	Cache      CacheConfig    `yaml:"cache,omitempty"`
	Security   SecurityConfig `yaml:"security,omitempty"`
	Sidebar    SidebarConfig  `yaml:"sidebar,omitempty"`
	Logging    LoggingConfig  `yaml:"logging,omitempty"`
	Manifest   ManifestConfig `yaml:"manifest,omitempty"`
	Notify     NotifyConfig   `yaml:"notify,omitempty"`
	Serve      ServeConfig    `yaml:"serve,omitempty"`
}

// CacheConfig controls TTLs and filesystem-watch invalidation.
type CacheConfig struct {
	// TTL used in production mode. Zero selects the default.
	TTL Duration `yaml:"ttl,omitempty"`
	// TTL used in development mode. Zero selects the default.
	DevTTL Duration `yaml:"dev_ttl,omitempty"`
	// Watch enables fsnotify-driven invalidation of cached entries.
	Watch bool `yaml:"watch,omitempty"`
	// SweepInterval for the periodic expired-entry sweep in serve mode.
	// Zero disables the sweep; TTL expiry on access still applies.
	SweepInterval Duration `yaml:"sweep_interval,omitempty"`
}

// SecurityConfig controls the content security validator.
type SecurityConfig struct {
	// Strict makes documents with security findings unresolvable. When
	// false, documents are served with a best-effort sanitized body.
	Strict bool `yaml:"strict,omitempty"`
	// BlockDangerous rejects script/iframe/object content and javascript:
	// URLs entirely instead of stripping them.
	BlockDangerous bool `yaml:"block_dangerous,omitempty"`
}

// SidebarConfig holds sidebar policy knobs.
type SidebarConfig struct {
	// UntaggedInFirstTab surfaces documents with no tab group only when the
	// first configured tab is active.
	UntaggedInFirstTab *bool `yaml:"untagged_in_first_tab,omitempty"`
}

// UntaggedInFirstTabEnabled applies the default (true) when unset.
func (s SidebarConfig) UntaggedInFirstTabEnabled() bool {
	if s.UntaggedInFirstTab == nil {
		return true
	}
	return *s.UntaggedInFirstTab
}

// ManifestConfig controls the optional scan-snapshot store.
type ManifestConfig struct {
	// Path to the SQLite database file. Empty disables the store entirely;
	// ":memory:" is accepted for ephemeral use.
	Path string `yaml:"path,omitempty"`
}

// NotifyConfig controls the optional NATS invalidation publisher.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// ServeConfig controls the JSON/metrics serve mode.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default values applied by Load.
const (
	DefaultTTL           = 5 * time.Minute
	DefaultDevTTL        = 2 * time.Second
	DefaultServeAddr     = ":8087"
	DefaultNotifySubject = "docsite.content.changed"
)

// Load reads, expands, and validates the configuration file. A .env file in
// the working directory is overlaid first (never overriding existing
// process environment).
func Load(path string) (*Config, error) {
	// Best effort: absence of a .env file is the common case.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = NormalizeMode(os.Getenv("DOCSITE_MODE"))
	} else {
		c.Mode = NormalizeMode(string(c.Mode))
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = Duration(DefaultTTL)
	}
	if c.Cache.DevTTL <= 0 {
		c.Cache.DevTTL = Duration(DefaultDevTTL)
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
	if c.Notify.Enabled && c.Notify.Subject == "" {
		c.Notify.Subject = DefaultNotifySubject
	}
	c.Logging.applyDefaults()
}

// Validate checks cross-field constraints not expressible in struct tags.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.Locale != nil {
		if err := c.Locale.Validate(); err != nil {
			return fmt.Errorf("locale: %w", err)
		}
	}
	if c.Notify.Enabled && c.Notify.URL == "" {
		return fmt.Errorf("notify.url is required when notify is enabled")
	}
	return nil
}

// EffectiveTTL returns the cache TTL for the active mode.
func (c *Config) EffectiveTTL() time.Duration {
	if c.Mode == ModeDevelopment {
		return c.Cache.DevTTL.Std()
	}
	return c.Cache.TTL.Std()
}

// Interactive reports whether docsite runs in development mode.
func (c *Config) Interactive() bool {
	return c.Mode == ModeDevelopment
}
