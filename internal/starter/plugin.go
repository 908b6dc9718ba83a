// Package starter is the starter plugin: agent introspection, agent-to-agent
// cards, and bootstrapping new Telegram-connected agents through the host.
package starter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/internal/registry"
)

const (
	Name        = "starter"
	Description = "A starter plugin for agent bootstrap"
	// Lowest priority so real model providers take precedence.
	Priority = -1000
)

// Options are the dependencies of the plugin beyond its Config.
type Options struct {
	Registrar registry.Registrar
	// Client performs the auto-start call to the host.
	Client *http.Client
	// PublicURL and Port are the base URL fallbacks when a request
	// carries no Host header.
	PublicURL   string
	Port        int
	MaxBodySize int64
	Logger      *slog.Logger
}

// Starter holds the plugin's immutable dependencies. Route handlers keep no
// state between calls.
type Starter struct {
	cfg         Config
	registrar   registry.Registrar
	client      *http.Client
	publicURL   string
	port        int
	maxBodySize int64
	logger      *slog.Logger
	now         func() time.Time
}

func New(cfg Config, opts Options) *Starter {
	if cfg.A2AVersion == "" {
		cfg.A2AVersion = DefaultA2AVersion
	}
	registrar := opts.Registrar
	if registrar == nil {
		registrar = registry.Disabled{Reason: "no registrar configured"}
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Starter{
		cfg:         cfg,
		registrar:   registrar,
		client:      client,
		publicURL:   opts.PublicURL,
		port:        opts.Port,
		maxBodySize: maxBody,
		logger:      logger.With("plugin", Name),
		now:         time.Now,
	}
}

// Plugin returns the descriptor the host registers.
func (s *Starter) Plugin() host.Plugin {
	return host.Plugin{
		Name:        Name,
		Description: Description,
		Priority:    Priority,
		Routes: []host.Route{
			{Name: "helloworld", Path: "/helloworld", Type: "GET", Handler: s.HelloWorld, OpenAPI: Spec.HelloWorld},
			{Name: "agent-info", Path: "/agent-info", Type: "GET", Handler: s.AgentInfo, OpenAPI: Spec.AgentInfo},
			{Name: "a2a-card", Path: "/a2a-card", Type: "GET", Public: true, Handler: s.A2ACard, OpenAPI: Spec.A2ACard},
			{Name: "create-telegram-agent", Path: "/agents", Type: "POST", Handler: s.CreateAgent, OpenAPI: Spec.CreateAgent},
		},
		Actions:   []host.Action{s.helloWorldAction()},
		Providers: []host.Provider{s.helloWorldProvider()},
		Services:  []host.Service{s.service()},
		Models: map[host.ModelType]host.ModelHandler{
			host.ModelTextSmall: s.textSmall,
			host.ModelTextLarge: s.textLarge,
		},
		Events: map[host.Event][]host.EventHandler{
			host.EventMessageReceived:      {s.logEvent(host.EventMessageReceived)},
			host.EventVoiceMessageReceived: {s.logEvent(host.EventVoiceMessageReceived)},
			host.EventWorldConnected:       {s.logEvent(host.EventWorldConnected)},
			host.EventWorldJoined:          {s.logEvent(host.EventWorldJoined)},
		},
		Schemas: Spec.Schemas(),
	}
}
