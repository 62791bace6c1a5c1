package engine_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/basis/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := engine.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultConfig(), cfg)
		assert.InDelta(t, 1.0/60.0, cfg.TickDelta(), 1e-12)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("BASIS_WIDTH", "800")
		t.Setenv("BASIS_HEIGHT", "600")
		t.Setenv("BASIS_DEBUG", "true")
		t.Setenv("BASIS_LOG_LEVEL", "debug")

		cfg, err := engine.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 800, cfg.Width)
		assert.Equal(t, 600, cfg.Height)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "basis", cfg.Title)
	})

	t.Run("file then environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "basis.env")
		require.NoError(t, os.WriteFile(path, []byte("BASIS_TITLE=from-file\nBASIS_TPS=30\n"), 0o600))
		t.Setenv("BASIS_TPS", "90")

		cfg, err := engine.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Title)
		assert.Equal(t, 90, cfg.TPS)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("BASIS_TPS", "0")
		_, err := engine.LoadConfig()
		assert.ErrorContains(t, err, "invalid tick rate 0")
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := engine.DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Width = 0
	assert.ErrorContains(t, bad.Validate(), "invalid window size 0x720")

	bad = cfg
	bad.LogLevel = "loud"
	assert.ErrorContains(t, bad.Validate(), `invalid log level "loud"`)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := engine.DefaultConfig()
	cfg.LogLevel = "warn"

	logger := engine.NewLogger(cfg, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	cfg.LogLevel = ""
	logger = engine.NewLogger(cfg, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
