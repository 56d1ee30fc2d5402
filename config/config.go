// Package config holds the highlighter settings and their file formats.
//
// Settings come from built-in defaults, then an optional TOML or YAML file,
// then command-line flags. Validate runs before any input is read.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultWindowSize is the history bound when none is configured
const DefaultWindowSize = 1024

// Config is the full set of highlighter settings
type Config struct {
	WindowSize int         `toml:"window_size" yaml:"window_size"`
	Score      ScoreConfig `toml:"score" yaml:"score"`
	Color      ColorConfig `toml:"color" yaml:"color"`
	Log        LogConfig   `toml:"log" yaml:"log"`
}

// ScoreConfig selects the run scoring formula
type ScoreConfig struct {
	Formula    string  `toml:"formula" yaml:"formula"`
	AgePenalty float64 `toml:"age_penalty" yaml:"age_penalty"`
	DecayShape float64 `toml:"decay_shape" yaml:"decay_shape"`
	Absent     string  `toml:"absent" yaml:"absent"`
	Script     string  `toml:"script" yaml:"script"`
}

// ColorConfig controls color output
type ColorConfig struct {
	Choice   string   `toml:"choice" yaml:"choice"`
	Mode     string   `toml:"mode" yaml:"mode"`
	Gradient string   `toml:"gradient" yaml:"gradient"`
	Stops    []string `toml:"stops" yaml:"stops"`
	Reverse  bool     `toml:"reverse" yaml:"reverse"`
}

// LogConfig controls diagnostics
type LogConfig struct {
	Debug bool `toml:"debug" yaml:"debug"`
	Stats bool `toml:"stats" yaml:"stats"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		WindowSize: DefaultWindowSize,
		Score: ScoreConfig{
			Formula:    "decay",
			AgePenalty: 0.01,
			DecayShape: 1.0,
			Absent:     "novel",
		},
		Color: ColorConfig{
			Choice:   "auto",
			Mode:     "auto",
			Gradient: "cool",
		},
	}
}

// DefaultPath returns the per-user config file location, or "" when the
// user config directory is unknown
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "comphl", "config.toml")
}

// Load reads path over the defaults
// A missing file is an error only when required is set
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses data into cfg, choosing the format from the path extension
// Keys absent from data keep their current value in cfg
func Decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return newParseError(path, err)
	}
	return nil
}

// newParseError extracts a position from the decoder error when one is available
func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		pe.Message = derr.Error()
	}
	return pe
}
