package engine

import (
	"io"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config holds the driver settings. Every field can be overridden from the
// environment.
type Config struct {
	Width    int    `config:"BASIS_WIDTH"`
	Height   int    `config:"BASIS_HEIGHT"`
	Title    string `config:"BASIS_TITLE"`
	TPS      int    `config:"BASIS_TPS"`
	Debug    bool   `config:"BASIS_DEBUG"`
	LogLevel string `config:"BASIS_LOG_LEVEL"`
}

// DefaultConfig returns the settings used when nothing is set in the
// environment.
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   720,
		Title:    "basis",
		TPS:      60,
		Debug:    false,
		LogLevel: "info",
	}
}

// LoadConfig reads the BASIS_* environment variables over the defaults.
// If files are given they are read first, so the environment wins.
func LoadConfig(files ...string) (Config, error) {
	cfg := DefaultConfig()

	var builder *config.Builder
	for _, file := range files {
		if builder == nil {
			builder = config.From(file)
		} else {
			builder = builder.From(file)
		}
	}
	if builder == nil {
		builder = config.FromEnv()
	} else {
		builder = builder.FromEnv()
	}

	if err := builder.To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the settings can drive a window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return eris.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return eris.Errorf("invalid tick rate %d", c.TPS)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}

// TickDelta is the fixed simulation step in seconds.
func (c Config) TickDelta() float64 {
	return 1 / float64(c.TPS)
}

// NewLogger builds a console logger at the configured level.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
