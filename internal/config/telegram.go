package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvTelegramAPIEndpoint = "TELEGRAM_API_ENDPOINT"
	EnvTelegramTimeout     = "TELEGRAM_TIMEOUT"
)

// TelegramConfig configures the Bot API client used to verify agent tokens.
type TelegramConfig struct {
	// APIEndpoint is a format string taking the token and method name.
	// Empty uses the public Bot API.
	APIEndpoint string `toml:"api_endpoint"`
	Timeout     string `toml:"timeout"`
}

func (c *TelegramConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *TelegramConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if v := os.Getenv(EnvTelegramAPIEndpoint); v != "" {
		c.APIEndpoint = v
	}
	if v := os.Getenv(EnvTelegramTimeout); v != "" {
		c.Timeout = v
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

func (c *TelegramConfig) Merge(overlay *TelegramConfig) {
	if overlay.APIEndpoint != "" {
		c.APIEndpoint = overlay.APIEndpoint
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}
