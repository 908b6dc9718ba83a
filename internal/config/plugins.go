package config

import "os"

// PluginsConfig holds raw per-plugin settings keyed by plugin name. Each
// plugin validates its own settings at initialization.
type PluginsConfig map[string]map[string]string

// pluginEnv lists the environment variables that feed each plugin's settings.
var pluginEnv = map[string][]string{
	"starter": {"EXAMPLE_PLUGIN_VARIABLE", "AGENT0_A2A_VERSION"},
}

// Settings returns a copy of the named plugin's settings.
func (c PluginsConfig) Settings(name string) map[string]string {
	out := make(map[string]string, len(c[name]))
	for k, v := range c[name] {
		out[k] = v
	}
	return out
}

// Merge overlays settings key by key.
func (c *PluginsConfig) Merge(overlay PluginsConfig) {
	for name, settings := range overlay {
		for k, v := range settings {
			c.set(name, k, v)
		}
	}
}

// Finalize applies environment overrides. A variable that is unset leaves the
// setting absent so plugins can tell "not provided" from "empty".
func (c *PluginsConfig) Finalize() {
	for name, keys := range pluginEnv {
		for _, key := range keys {
			if v, ok := os.LookupEnv(key); ok {
				c.set(name, key, v)
			}
		}
	}
}

func (c *PluginsConfig) set(name, key, value string) {
	if *c == nil {
		*c = PluginsConfig{}
	}
	if (*c)[name] == nil {
		(*c)[name] = map[string]string{}
	}
	(*c)[name][key] = value
}
