// Package config loads vimcore settings.
//
// Settings come from built-in defaults, then an optional file, then
// VIMCORE_* environment variables. Files ending in .yaml or .yml are read as
// YAML; anything else is TOML:
//
//	[logging]
//	level = "debug"
//
//	[script]
//	timeout = "500ms"
//	call_stack_size = 128
//
//	[registers]
//	file = "~/.vimcore/registers.json"
//	clipboard = "unnamedplus"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vimcore/internal/logging"
)

// ErrInvalidConfig is returned for settings with unusable values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting.
type Config struct {
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Script    ScriptConfig    `toml:"script" yaml:"script"`
	Registers RegistersConfig `toml:"registers" yaml:"registers"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// ScriptConfig bounds expression evaluation.
type ScriptConfig struct {
	Timeout       Duration `toml:"timeout" yaml:"timeout"`
	CallStackSize int      `toml:"call_stack_size" yaml:"call_stack_size"`
}

// RegistersConfig configures the register store.
type RegistersConfig struct {
	// File persists registers between sessions. Empty disables persistence.
	File string `toml:"file" yaml:"file"`
	// Clipboard is "", "unnamed" (mirror to '*') or "unnamedplus"
	// (mirror to '+').
	Clipboard string `toml:"clipboard" yaml:"clipboard"`
}

// Duration is a time.Duration written as a string such as "2s".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Script: ScriptConfig{
			Timeout:       Duration(2 * time.Second),
			CallStackSize: 256,
		},
	}
}

// Load returns the defaults overlaid with the file at path and then the
// environment. A missing file is not an error; an empty path skips the
// file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(path, data, cfg)
	default:
		return decodeTOML(path, data, cfg)
	}
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

func decodeYAML(path string, data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Script.Timeout <= 0 {
		return fmt.Errorf("%w: script.timeout must be positive", ErrInvalidConfig)
	}
	if c.Script.CallStackSize <= 0 {
		return fmt.Errorf("%w: script.call_stack_size must be positive", ErrInvalidConfig)
	}
	if _, err := c.Registers.MirrorRegister(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// MirrorRegister returns the register yanks and deletes are mirrored to, or
// 0 for none.
func (r RegistersConfig) MirrorRegister() (rune, error) {
	switch r.Clipboard {
	case "":
		return 0, nil
	case "unnamed":
		return '*', nil
	case "unnamedplus":
		return '+', nil
	default:
		return 0, fmt.Errorf("%w: registers.clipboard %q", ErrInvalidConfig, r.Clipboard)
	}
}

// ParseError is an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
