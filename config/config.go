//nolint:tagliatelle // superior snake-case yo.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gramkit/gramkit/cache"
)

// Config represents the complete client configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Activity ActivityConfig `yaml:"activity"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ActivityConfig contains defaults for scoped activity broadcasts.
type ActivityConfig struct {
	Delay      time.Duration `yaml:"delay"`       // Pause between periodic sends.
	AutoCancel *bool         `yaml:"auto_cancel"` // Send terminal cancel on scope exit (default true).
}

// CacheConfig enables the Redis-backed resolution cache.
type CacheConfig struct {
	Enabled      bool `yaml:"enabled"`
	cache.Config `yaml:",inline"`
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration and sets defaults.
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.Activity.Delay == 0 {
		c.Activity.Delay = 4 * time.Second
	}

	if c.Activity.Delay < time.Second {
		return fmt.Errorf(
			"activity delay must be at least 1 second, got %v",
			c.Activity.Delay,
		)
	}

	if c.Activity.AutoCancel == nil {
		autoCancel := true
		c.Activity.AutoCancel = &autoCancel
	}

	if c.Cache.Enabled {
		if c.Cache.Address == "" {
			return fmt.Errorf("cache enabled but no address configured")
		}

		if err := c.Cache.Config.Validate(); err != nil {
			return fmt.Errorf("invalid cache config: %w", err)
		}
	}

	return nil
}

// CancelOnExit returns the configured auto-cancel default.
func (c *ActivityConfig) CancelOnExit() bool {
	return c.AutoCancel == nil || *c.AutoCancel
}
