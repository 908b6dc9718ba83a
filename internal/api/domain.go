package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/agent-starter/internal/agents"
	"github.com/JaimeStill/agent-starter/internal/config"
	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/internal/registry"
	"github.com/JaimeStill/agent-starter/internal/starter"
)

// Domain holds the systems that comprise the API: the agent store, the host
// runtime built over it, and the plugins loaded into the host.
type Domain struct {
	Agents  *agents.Repository
	Host    *host.Host
	Plugins []host.Plugin
}

// NewDomain loads the character, builds the host over the agent store, and
// initializes every plugin. Plugins are not mounted here.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	channel := agents.NewTelegram(cfg.Telegram.APIEndpoint, cfg.Telegram.TimeoutDuration())

	agentsSys := agents.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		channel,
	)

	character, err := host.LoadCharacter(cfg.Host.CharacterFile)
	if err != nil {
		return nil, fmt.Errorf("load character: %w", err)
	}

	h := host.New(character, agentsSys, runtime.Logger)

	starterPlugin, err := newStarter(cfg, runtime)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Agents:  agentsSys,
		Host:    h,
		Plugins: []host.Plugin{starterPlugin},
	}, nil
}

func newStarter(cfg *config.Config, runtime *Runtime) (host.Plugin, error) {
	pluginCfg, err := starter.Init(cfg.Plugins.Settings(starter.Name), runtime.Logger)
	if err != nil {
		return host.Plugin{}, fmt.Errorf("plugin %s: %w", starter.Name, err)
	}

	registrar := registry.New(runtime.Lifecycle.Context(), &cfg.Registry, runtime.Logger)

	s := starter.New(pluginCfg, starter.Options{
		Registrar:   registrar,
		Client:      &http.Client{Timeout: cfg.Host.StartTimeoutDuration()},
		PublicURL:   cfg.Host.PublicURL,
		Port:        cfg.Server.Port,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
		Logger:      runtime.Logger,
	})
	return s.Plugin(), nil
}
