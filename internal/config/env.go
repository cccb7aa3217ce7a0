package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix starts every environment variable read by Load.
const EnvPrefix = "VIMCORE_"

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(*Config, string) error{
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	EnvPrefix + "LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
	EnvPrefix + "SCRIPT_TIMEOUT": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Script.Timeout = Duration(d)
		return nil
	},
	EnvPrefix + "SCRIPT_CALL_STACK_SIZE": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Script.CallStackSize = n
		return nil
	},
	EnvPrefix + "REGISTERS_FILE": func(c *Config, v string) error {
		c.Registers.File = v
		return nil
	},
	EnvPrefix + "REGISTERS_CLIPBOARD": func(c *Config, v string) error {
		c.Registers.Clipboard = v
		return nil
	},
}

// applyEnv overrides settings from the environment. Set but empty
// variables count as set.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for name, set := range envSetters {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, v, err)
		}
	}
	return nil
}
