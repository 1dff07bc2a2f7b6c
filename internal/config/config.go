// Package config provides centralized configuration management for the
// application. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Map     MapConfig
	Import  ImportConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0 for SSE)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// MapConfig holds map document settings.
type MapConfig struct {
	// Path is the SVG map document the catalog is built from (required)
	// Supports both MAP_SVG_PATH and MAP_PATH env vars for compatibility
	Path string `env:"MAP_SVG_PATH" envAlt:"MAP_PATH" default:"assets/world.svg"`
}

// ImportConfig holds import document ceilings.
type ImportConfig struct {
	// MaxDocumentBytes is the whole-document size ceiling (default: 256KiB)
	MaxDocumentBytes int `env:"IMPORT_MAX_DOCUMENT_BYTES" default:"262144"`

	// MaxSets is the maximum number of named sets per document (default: 100)
	MaxSets int `env:"IMPORT_MAX_SETS" default:"100"`

	// MaxCountryRefs is the total country-reference ceiling (default: 5000)
	MaxCountryRefs int `env:"IMPORT_MAX_COUNTRY_REFS" default:"5000"`

	// MaxNameLen caps map and set names in characters (default: 60)
	MaxNameLen int `env:"IMPORT_MAX_NAME_LEN" default:"60"`

	// MaxColorLen caps color values in characters (default: 32)
	MaxColorLen int `env:"IMPORT_MAX_COLOR_LEN" default:"32"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit is requests per minute for the import endpoint (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
