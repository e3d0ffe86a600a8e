package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/crudkeeper/internal/flagx"
)

var knownFlags = []string{"-u", "-e", "-t", "-m", "-i", "-d", "-f", "-l"}

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in knownFlags are looked at; -c/-config belong to parseJson.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("crudkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "base URL of the collection store")
	fs.StringVar(&cfg.EndpointID, "e", cfg.EndpointID, "collection store endpoint id")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	maxAge := fs.Int("m", int(cfg.CacheMaxAge.Seconds()), "read cache max age (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.FallbackDriver, "d", cfg.FallbackDriver, "fallback store driver (sqlite|bolt)")
	fs.StringVar(&cfg.FallbackPath, "f", cfg.FallbackPath, "fallback store path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations given in JSON may be sub-second; only explicit flags replace them.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "m":
			cfg.CacheMaxAge = time.Duration(*maxAge) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})

	return nil
}
