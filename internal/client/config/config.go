package config

import (
	"log/slog"
	"os"
	"time"
)

// Config holds runtime settings for the MindMate client.
//
// Fields:
//   - ServerBaseURL: base URL of the MindMate web server; API paths are resolved against it.
//   - StoragePath: SQLite file acting as local storage for the session.
//   - AuthCheckInterval: how often the open page is re-checked; 0 disables it.
//   - LogLevel: minimum level written to stderr.
type Config struct {
	ServerBaseURL     string
	StoragePath       string
	AuthCheckInterval time.Duration
	LogLevel          slog.Level
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.StoragePath = "mindmate.db"
	c.AuthCheckInterval = 30 * time.Second
	c.LogLevel = slog.LevelWarn
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
