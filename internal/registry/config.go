package registry

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPinataEndpoint is the Pinata JSON pinning endpoint.
const DefaultPinataEndpoint = "https://api.pinata.cloud/pinning/pinJSONToIPFS"

// Config holds the settings for optional on-chain identity registration.
// Registration is enabled only when RPCURL, PrivateKey, PinataJWT, and
// IdentityRegistry are all present.
type Config struct {
	RPCURL           string   `toml:"rpc_url"`
	PrivateKey       string   `toml:"private_key"`
	PinataJWT        string   `toml:"pinata_jwt"`
	PinataEndpoint   string   `toml:"pinata_endpoint"`
	IdentityRegistry string   `toml:"identity_registry"`
	ChainID          int64    `toml:"chain_id"`
	ENS              string   `toml:"ens"`
	TrustModels      []string `toml:"trust_models"`
	Timeout          string   `toml:"timeout"`
}

// Env maps environment variable names for registry configuration.
type Env struct {
	RPCURL           string
	PrivateKey       string
	PinataJWT        string
	PinataEndpoint   string
	IdentityRegistry string
	ChainID          string
	ENS              string
	TrustModels      string
	Timeout          string
}

// Missing lists the required settings that are not set.
func (c *Config) Missing() []string {
	var missing []string
	if c.RPCURL == "" {
		missing = append(missing, "rpc_url")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if c.PinataJWT == "" {
		missing = append(missing, "pinata_jwt")
	}
	if c.IdentityRegistry == "" {
		missing = append(missing, "identity_registry")
	}
	return missing
}

func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.RPCURL != "" {
		c.RPCURL = overlay.RPCURL
	}
	if overlay.PrivateKey != "" {
		c.PrivateKey = overlay.PrivateKey
	}
	if overlay.PinataJWT != "" {
		c.PinataJWT = overlay.PinataJWT
	}
	if overlay.PinataEndpoint != "" {
		c.PinataEndpoint = overlay.PinataEndpoint
	}
	if overlay.IdentityRegistry != "" {
		c.IdentityRegistry = overlay.IdentityRegistry
	}
	if overlay.ChainID != 0 {
		c.ChainID = overlay.ChainID
	}
	if overlay.ENS != "" {
		c.ENS = overlay.ENS
	}
	if overlay.TrustModels != nil {
		c.TrustModels = overlay.TrustModels
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.PinataEndpoint == "" {
		c.PinataEndpoint = DefaultPinataEndpoint
	}
	if c.ChainID == 0 {
		c.ChainID = 11155111
	}
	if c.TrustModels == nil {
		c.TrustModels = []string{"reputation"}
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.RPCURL, &c.RPCURL)
	set(env.PrivateKey, &c.PrivateKey)
	set(env.PinataJWT, &c.PinataJWT)
	set(env.PinataEndpoint, &c.PinataEndpoint)
	set(env.IdentityRegistry, &c.IdentityRegistry)
	set(env.ENS, &c.ENS)
	set(env.Timeout, &c.Timeout)

	if env.ChainID != "" {
		if v := os.Getenv(env.ChainID); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				c.ChainID = n
			}
		}
	}
	if env.TrustModels != "" {
		if v := os.Getenv(env.TrustModels); v != "" {
			var models []string
			for _, m := range strings.Split(v, ",") {
				if m = strings.TrimSpace(m); m != "" {
					models = append(models, m)
				}
			}
			c.TrustModels = models
		}
	}
}

func (c *Config) validate() error {
	if c.ChainID <= 0 {
		return fmt.Errorf("chain_id must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
