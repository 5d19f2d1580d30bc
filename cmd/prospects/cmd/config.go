package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"prospects/internal/fetch"
	"prospects/lib/configutil"
	configlibsql "prospects/lib/configutil/libsql"
	libtelemetry "prospects/lib/telemetry"
	"strings"
	"time"
)

const (
	BACKEND_BADGER = "badger"
	BACKEND_SQLITE = "sqlite"
	BACKEND_REDIS  = "redis"
	BACKEND_MEMORY = "memory"
)

type CacheConfig struct {
	// Backend is one of badger, sqlite, redis or memory.
	Backend string `json:"backend"`
	// Path is the badger directory or the sqlite file.
	Path       string `json:"path"`
	RedisUrl   string `json:"redis_url"`
	TtlSeconds int    `json:"ttl_seconds"`
}

type GateConfig struct {
	BaseDelaySeconds float64 `json:"base_delay_seconds"`
	Jitter           *bool   `json:"jitter"`
	JitterFraction   float64 `json:"jitter_fraction"`
}

type Config struct {
	Cache     CacheConfig         `json:"cache"`
	Gate      GateConfig          `json:"gate"`
	Snapshots configlibsql.Struct `json:"snapshots"`

	// Organizations are the "in the system" pages to read players from.
	Organizations []string `json:"organizations"`

	// Season is the end year of the season to report on, 0 derives it from today.
	Season int `json:"season"`

	Telemetry libtelemetry.Config `json:"telemetry"`
	LogLevel  string              `json:"log_level"`
}

func DefaultConfig() Config {
	jitter := true
	return Config{
		Cache: CacheConfig{
			Backend:    BACKEND_BADGER,
			Path:       ".request-cache",
			TtlSeconds: int(fetch.DefaultTTL / time.Second),
		},
		Gate: GateConfig{
			BaseDelaySeconds: 10,
			Jitter:           &jitter,
			JitterFraction:   fetch.DefaultJitterFraction,
		},
		Snapshots: configlibsql.Struct{File: "progress.db"},
		Organizations: []string{
			"https://www.eliteprospects.com/team/64/montreal-canadiens/in-the-system",
		},
		LogLevel: "info",
	}
}

// LoadConfig reads the file (and its .local override) on top of DefaultConfig, a missing
// file leaves the defaults in place. A bare file name is searched for from the working
// directory up to the filesystem root.
func LoadConfig(path string) (Config, error) {
	read := configutil.ReadConfig[Config]
	if filepath.Base(path) == path {
		read = configutil.ReadRecursively[Config]
	}
	config, err := read(path, DefaultConfig())
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", path)
		return config, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BACKEND_BADGER, BACKEND_SQLITE, BACKEND_MEMORY:
	case BACKEND_REDIS:
		if c.Cache.RedisUrl == "" {
			return fmt.Errorf("cache backend redis needs a redis_url")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Gate.BaseDelaySeconds < 0 {
		return fmt.Errorf("gate base_delay_seconds must not be negative")
	}
	if c.Gate.JitterFraction < 0 || c.Gate.JitterFraction > 1 {
		return fmt.Errorf("gate jitter_fraction must be within [0, 1]")
	}
	if len(c.Organizations) == 0 {
		return fmt.Errorf("no organizations configured")
	}
	return nil
}

func (c Config) TTL() time.Duration {
	return time.Duration(c.Cache.TtlSeconds) * time.Second
}

func (c Config) GateOptions() fetch.GateOptions {
	return fetch.GateOptions{
		BaseDelay:      time.Duration(c.Gate.BaseDelaySeconds * float64(time.Second)),
		Jitter:         c.Gate.Jitter == nil || *c.Gate.Jitter,
		JitterFraction: c.Gate.JitterFraction,
	}
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
