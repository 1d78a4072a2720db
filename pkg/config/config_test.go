package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	viper.Reset()
	global = nil

	require.NoError(t, Init(""))
	cfg := Get()

	assert.Equal(t, "http://localhost:8000/chat", cfg.Server.ChatURL)
	assert.Equal(t, "ws://localhost:8000/ws", cfg.Server.EventsURL)
	assert.Equal(t, "graph", cfg.Engine)
	assert.Equal(t, "ghost-local", cfg.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 120, cfg.Chat.TimeoutSecs)
}

func TestEnvOverride(t *testing.T) {
	viper.Reset()
	global = nil

	t.Setenv("GHOST_ENGINE", "surface")
	t.Setenv("GHOST_MODEL", "ghost-remote")

	require.NoError(t, Init(""))
	cfg := Get()

	assert.Equal(t, "surface", cfg.Engine)
	assert.Equal(t, "ghost-remote", cfg.Model)
}

func TestGetWithoutInit(t *testing.T) {
	viper.Reset()
	global = nil

	cfg := Get()
	require.NotNil(t, cfg)
	assert.Equal(t, "graph", cfg.Engine)
}

func TestBuildSettingsPath(t *testing.T) {
	path := BuildSettingsPath("ghost.log")
	assert.Contains(t, path, ".ghost")
	assert.Contains(t, path, "ghost.log")
}
