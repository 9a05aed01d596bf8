// Package config loads the pgcopy command configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/calebcase/pgcopy"
	"github.com/calebcase/pgcopy/frame"
	"github.com/calebcase/pgcopy/numeric"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("config")

// ErrInvalid is returned for a configuration that loads but cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the pgcopy configuration.
type Config struct {
	Limits  Limits  `yaml:"limits"`
	Logging Logging `yaml:"logging"`
}

// Limits bound what the decoders accept. Zero means unbounded.
type Limits struct {
	MaxDigits    int  `yaml:"max_digits"`
	MaxFieldSize int  `yaml:"max_field_size"`
	StrictScale  bool `yaml:"strict_scale"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from path. Settings missing from the file
// keep their defaults.
func LoadConfig(path string) (c *Config, err error) {
	defer Error.WrapP(&err)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c = DefaultConfig()

	err = yaml.Unmarshal(data, c)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Limits.MaxDigits < 0 || c.Limits.MaxDigits > numeric.MaxGroups {
		return fmt.Errorf("%w: max_digits %d not in [0, %d]", ErrInvalid, c.Limits.MaxDigits, numeric.MaxGroups)
	}

	if c.Limits.MaxFieldSize < 0 || int64(c.Limits.MaxFieldSize) > frame.MaxFieldSize {
		return fmt.Errorf("%w: max_field_size %d not in [0, %d]", ErrInvalid, c.Limits.MaxFieldSize, frame.MaxFieldSize)
	}

	_, err := c.Level()
	if err != nil {
		return err
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("%w: logging level %q", ErrInvalid, c.Logging.Level)
}

// Schema returns the codec schema for the configured limits.
func (c *Config) Schema() pgcopy.Schema {
	return pgcopy.Schema{
		Frame: frame.Schema{
			MaxFieldSize: c.Limits.MaxFieldSize,
		},
		Numeric: numeric.Schema{
			MaxDigits:   c.Limits.MaxDigits,
			StrictScale: c.Limits.StrictScale,
		},
	}
}
