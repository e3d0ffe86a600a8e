// Package config loads runtime configuration for the crudkeeper console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the collection store (default https://crudcrud.com/api)
//	-e string   endpoint id; empty means every collection uses the fallback store
//	-t int      request timeout (seconds)
//	-m int      read cache max age (seconds)
//	-i int      online status check interval (seconds)
//	-d string   fallback driver: sqlite or bolt
//	-f string   fallback database path
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations are strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://crudcrud.com/api",
//	  "endpoint_id": "72b5af0caa92410e9d883e29aa53707d",
//	  "request_timeout": "10s",
//	  "cache_max_age": "60s",
//	  "online_check_interval": "5s",
//	  "fallback_driver": "sqlite",
//	  "fallback_path": "fallback.db",
//	  "local_collections": ["products"],
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config
