package testutil

import (
	"github.com/gramkit/gramkit/config"
)

// NewTestConfig returns a minimal valid config for testing.
func NewTestConfig() *config.Config {
	cfg := &config.Config{
		LogLevel: "debug",
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	return cfg
}
