package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"COREOBJ_LOG_LEVEL", "COREOBJ_NO_COLOR", "COREOBJ_DEFAULT_CLASS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.DefaultClass)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COREOBJ_LOG_LEVEL", "debug")
	t.Setenv("COREOBJ_NO_COLOR", "true")
	t.Setenv("COREOBJ_DEFAULT_CLASS", "Horse")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "Horse", cfg.DefaultClass)
	level, _ := cfg.Level()
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("COREOBJ_LOG_LEVEL", "loud")
	_, err := Load()
	assert.ErrorContains(t, err, "COREOBJ_LOG_LEVEL")
}
