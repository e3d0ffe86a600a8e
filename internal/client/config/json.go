package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/crudkeeper/internal/flagx"
	"github.com/dmitrijs2005/crudkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-valued fields mean "not set" and leave the current value alone.
type JsonConfig struct {
	BaseURL             string         `json:"base_url"`
	EndpointID          *string        `json:"endpoint_id"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	CacheMaxAge         timex.Duration `json:"cache_max_age"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	FallbackDriver      string         `json:"fallback_driver"`
	FallbackPath        string         `json:"fallback_path"`
	LocalCollections    []string       `json:"local_collections"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Without the flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.EndpointID != nil {
		cfg.EndpointID = *jc.EndpointID
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheMaxAge.Duration > 0 {
		cfg.CacheMaxAge = jc.CacheMaxAge.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.FallbackDriver != "" {
		cfg.FallbackDriver = jc.FallbackDriver
	}
	if jc.FallbackPath != "" {
		cfg.FallbackPath = jc.FallbackPath
	}
	if jc.LocalCollections != nil {
		cfg.LocalCollections = jc.LocalCollections
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
