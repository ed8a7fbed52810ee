package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5000", c.ServerBaseURL)
	assert.Equal(t, "mindmate.db", c.StoragePath)
	assert.Equal(t, 30*time.Second, c.AuthCheckInterval)
	assert.Equal(t, slog.LevelWarn, c.LogLevel)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"server_base_url": "http://from-json:5000",
		"storage_path":    "json.db",
	})
	os.Args = []string{"mindmate", "-c", path, "-a", "http://from-flag:8080"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "http://from-flag:8080", cfg.ServerBaseURL)
	assert.Equal(t, "json.db", cfg.StoragePath)
	assert.Equal(t, 30*time.Second, cfg.AuthCheckInterval)
}
