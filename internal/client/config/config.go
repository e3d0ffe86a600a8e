package config

import (
	"fmt"
	"os"
	"slices"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config holds runtime settings for the console.
type Config struct {
	BaseURL    string
	EndpointID string

	RequestTimeout      time.Duration
	CacheMaxAge         time.Duration
	OnlineCheckInterval time.Duration

	FallbackDriver string
	FallbackPath   string
	// LocalCollections are served from the fallback store even when an
	// endpoint is configured.
	LocalCollections []string

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://crudcrud.com/api"
	c.EndpointID = ""
	c.RequestTimeout = 10 * time.Second
	c.CacheMaxAge = 60 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.FallbackDriver = DriverSQLite
	c.FallbackPath = "fallback.db"
	c.LocalCollections = []string{"products"}
	c.LogLevel = "info"
}

// IsLocal reports whether collection must use the fallback store.
func (c *Config) IsLocal(collection string) bool {
	if c.EndpointID == "" {
		return true
	}
	return slices.Contains(c.LocalCollections, collection)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the console cannot run with. A zero request
// timeout would disable the HTTP client timeout and a zero check interval
// would panic the online watcher's ticker.
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.CacheMaxAge <= 0 {
		return fmt.Errorf("cache max age must be positive, got %s", c.CacheMaxAge)
	}
	switch c.FallbackDriver {
	case DriverSQLite, DriverBolt:
	default:
		return fmt.Errorf("unknown fallback driver %q", c.FallbackDriver)
	}
	return nil
}
