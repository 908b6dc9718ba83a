package openapi

import (
	"os"
	"strings"
)

// Config holds document metadata for the generated specification.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	// Servers lists extra base URLs advertised in the document.
	Servers []string `toml:"servers"`
}

// ConfigEnv maps environment variable names for Config. Servers is
// comma-separated.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Agent Starter API"
	}
	if c.Description == "" {
		c.Description = "Agent bootstrap service: agent introspection, agent-to-agent cards, and agent creation."
	}
	if env == nil {
		return nil
	}

	if v := getenv(env.Title); v != "" {
		c.Title = v
	}
	if v := getenv(env.Description); v != "" {
		c.Description = v
	}
	if v := getenv(env.Servers); v != "" {
		c.Servers = c.Servers[:0]
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Servers = append(c.Servers, s)
			}
		}
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if len(overlay.Servers) > 0 {
		c.Servers = overlay.Servers
	}
}

// Apply writes the metadata onto spec.
func (c *Config) Apply(spec *Spec) {
	spec.Info.Title = c.Title
	spec.SetDescription(c.Description)
	for _, s := range c.Servers {
		spec.AddServer(s)
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
