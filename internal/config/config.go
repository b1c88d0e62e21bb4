// Package config loads server configuration from an optional YAML file with
// environment variable overrides (prefix WIRECALL_, double underscore as the
// nesting separator, e.g. WIRECALL_SERVER__PORT).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	RPC       RPCConfig       `koanf:"rpc"`
	Storage   StorageConfig   `koanf:"storage"`
	Events    EventsConfig    `koanf:"events"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	LogLevel  string          `koanf:"log_level"`
}

type ServerConfig struct {
	Port           int           `koanf:"port"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

type RPCConfig struct {
	// BasePath is the URL prefix the call handler is mounted under.
	BasePath string `koanf:"base_path"`

	AllowBatching bool `koanf:"allow_batching"`

	// MaxBatchSize caps calls per batch request. Zero means unlimited.
	MaxBatchSize int `koanf:"max_batch_size"`
}

type StorageConfig struct {
	// Type selects the call-log store: memory, sqlite, or none.
	Type   string       `koanf:"type"`
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type EventsConfig struct {
	// Type selects the call-event publisher: direct, nats, or none.
	Type string     `koanf:"type"`
	NATS NATSConfig `koanf:"nats"`
}

type NATSConfig struct {
	URL     string `koanf:"url"`
	Subject string `koanf:"subject"`
}

type TelemetryConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Load reads the config file at path (skipped when the file does not exist)
// and applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	// Environment variables override file config
	if err := k.Load(env.Provider("WIRECALL_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "WIRECALL_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	defaults := map[string]any{
		"server.port":            8080,
		"server.request_timeout": "30s",
		"rpc.base_path":          "/rpc",
		"rpc.allow_batching":     true,
		"storage.type":           "memory",
		"storage.sqlite.path":    "wirecall.db",
		"events.type":            "direct",
		"events.nats.url":        "nats://127.0.0.1:4222",
		"events.nats.subject":    "wirecall.calls",
		"log_level":              "info",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
