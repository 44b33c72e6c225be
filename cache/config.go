package cache

import "time"

// Config holds cache store configuration.
type Config struct {
	Address      string        `yaml:"address"`
	Password     string        `yaml:"password"` //nolint:gosec // Config field, not a hardcoded secret.
	DB           int           `yaml:"db"`
	Prefix       string        `yaml:"prefix"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PoolSize     int           `yaml:"pool_size"`
	TTL          time.Duration `yaml:"ttl"` // TTL for cached resolutions (0 = no expiration).
}

// Validate validates the configuration and sets defaults.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		c.Prefix = "gramkit:"
	}

	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}

	if c.PoolSize == 0 {
		c.PoolSize = 10
	}

	return nil
}
