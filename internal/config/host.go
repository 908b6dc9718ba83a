package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	EnvHostCharacterFile = "HOST_CHARACTER_FILE"
	// EnvHostPublicURL mirrors the variable agent hosts conventionally use
	// to advertise their externally reachable address.
	EnvHostPublicURL    = "ELIZA_SERVER_URL"
	EnvHostStartTimeout = "HOST_START_TIMEOUT"
)

// HostConfig configures the host runtime the plugins run inside.
type HostConfig struct {
	// CharacterFile is a JSON or YAML character definition.
	CharacterFile string `toml:"character_file"`
	// PublicURL is used to build absolute links when a request carries no Host.
	PublicURL string `toml:"public_url"`
	// StartTimeout bounds the auto-start call a plugin makes back into the host.
	StartTimeout string `toml:"start_timeout"`
}

func (c *HostConfig) StartTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.StartTimeout)
	return d
}

func (c *HostConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *HostConfig) Merge(overlay *HostConfig) {
	if overlay.CharacterFile != "" {
		c.CharacterFile = overlay.CharacterFile
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
	if overlay.StartTimeout != "" {
		c.StartTimeout = overlay.StartTimeout
	}
}

func (c *HostConfig) loadDefaults() {
	if c.CharacterFile == "" {
		c.CharacterFile = "character.yaml"
	}
	if c.StartTimeout == "" {
		c.StartTimeout = "30s"
	}
}

func (c *HostConfig) loadEnv() {
	if v := os.Getenv(EnvHostCharacterFile); v != "" {
		c.CharacterFile = v
	}
	if v := os.Getenv(EnvHostPublicURL); v != "" {
		c.PublicURL = v
	}
	if v := os.Getenv(EnvHostStartTimeout); v != "" {
		c.StartTimeout = v
	}
}

func (c *HostConfig) validate() error {
	if _, err := time.ParseDuration(c.StartTimeout); err != nil {
		return fmt.Errorf("invalid start_timeout: %w", err)
	}
	if c.PublicURL != "" {
		u, err := url.Parse(c.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid public_url: %q", c.PublicURL)
		}
	}
	return nil
}
