package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/mindmate-client/internal/flagx"
	"github.com/dmitrijs2005/mindmate-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals are
// timex.Duration so the file may say "30s" or give integer nanoseconds.
// Pointer fields distinguish "absent" from "zero".
type JsonConfig struct {
	ServerBaseURL     *string         `json:"server_base_url"`
	StoragePath       *string         `json:"storage_path"`
	AuthCheckInterval *timex.Duration `json:"auth_check_interval"`
	LogLevel          *slog.Level     `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Keys missing from the file leave cfg untouched. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.AuthCheckInterval != nil {
		cfg.AuthCheckInterval = jc.AuthCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
