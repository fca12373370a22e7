// SPDX-License-Identifier: MIT

// Package config loads matstep settings from defaults, an optional TOML file
// and MATSTEP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/matstep/grid"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override: MATSTEP_ENGINE_STEP_LIMIT.
const EnvPrefix = "MATSTEP"

// EnvConfigFile names the variable holding an explicit config file path.
const EnvConfigFile = "MATSTEP_CONFIG"

// ErrInvalidConfig indicates a value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds application configuration.
type Config struct {
	Editor  EditorConfig
	Engine  EngineConfig
	UI      UIConfig
	Logging LoggingConfig
}

// EditorConfig sizes the grid editor.
type EditorConfig struct {
	DefaultRows  int `mapstructure:"default_rows"`
	DefaultCols  int `mapstructure:"default_cols"`
	ViewportSize int `mapstructure:"viewport_size"`
	MaxSize      int `mapstructure:"max_size"`
}

// EngineConfig bounds the multiplication engine.
type EngineConfig struct {
	// StepLimit rejects chains whose trace would be longer; 0 disables it.
	StepLimit int `mapstructure:"step_limit"`
}

// UIConfig holds presentation colors (lipgloss color strings).
type UIConfig struct {
	AccentColor    string `mapstructure:"accent_color"`
	HighlightColor string `mapstructure:"highlight_color"`
	MutedColor     string `mapstructure:"muted_color"`
}

// LoggingConfig selects the log level and destination.
type LoggingConfig struct {
	Level string // info, debug or trace
	File  string // empty discards TUI logs
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			DefaultRows:  grid.DefaultRows,
			DefaultCols:  grid.DefaultCols,
			ViewportSize: grid.DefaultViewport,
			MaxSize:      grid.DefaultMaxSize,
		},
		Engine: EngineConfig{StepLimit: 100000},
		UI: UIConfig{
			AccentColor:    "#7D56F4",
			HighlightColor: "#F4D03F",
			MutedColor:     "#6C7086",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.config/matstep/config.toml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "matstep", "config.toml")
}

// Load reads configuration from file and env. path overrides $MATSTEP_CONFIG,
// which overrides DefaultPath(). A missing default file is not an error; a
// missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("editor.default_rows", d.Editor.DefaultRows)
	v.SetDefault("editor.default_cols", d.Editor.DefaultCols)
	v.SetDefault("editor.viewport_size", d.Editor.ViewportSize)
	v.SetDefault("editor.max_size", d.Editor.MaxSize)
	v.SetDefault("engine.step_limit", d.Engine.StepLimit)
	v.SetDefault("ui.accent_color", d.UI.AccentColor)
	v.SetDefault("ui.highlight_color", d.UI.HighlightColor)
	v.SetDefault("ui.muted_color", d.UI.MutedColor)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigFile)
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every numeric setting. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	e := c.Editor
	switch {
	case e.MaxSize < 1 || e.MaxSize > grid.MaxSize:
		return fmt.Errorf("editor.max_size %d outside [1, %d]: %w", e.MaxSize, grid.MaxSize, ErrInvalidConfig)
	case e.DefaultRows < 1 || e.DefaultRows > e.MaxSize:
		return fmt.Errorf("editor.default_rows %d outside [1, %d]: %w", e.DefaultRows, e.MaxSize, ErrInvalidConfig)
	case e.DefaultCols < 1 || e.DefaultCols > e.MaxSize:
		return fmt.Errorf("editor.default_cols %d outside [1, %d]: %w", e.DefaultCols, e.MaxSize, ErrInvalidConfig)
	case e.ViewportSize < 1:
		return fmt.Errorf("editor.viewport_size %d must be positive: %w", e.ViewportSize, ErrInvalidConfig)
	case c.Engine.StepLimit < 0:
		return fmt.Errorf("engine.step_limit %d must not be negative: %w", c.Engine.StepLimit, ErrInvalidConfig)
	}

	return nil
}
