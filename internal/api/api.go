// Package api assembles the HTTP API module: the host's agent and runtime
// endpoints, every mounted plugin, and the generated OpenAPI document.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JaimeStill/agent-starter/internal/config"
	"github.com/JaimeStill/agent-starter/internal/infrastructure"
	"github.com/JaimeStill/agent-starter/pkg/lifecycle"
	"github.com/JaimeStill/agent-starter/pkg/middleware"
	"github.com/JaimeStill/agent-starter/pkg/module"
	"github.com/JaimeStill/agent-starter/pkg/openapi"
)

// Module is the mounted API together with the host it serves.
type Module struct {
	*module.Module
	runtime *Runtime
	domain  *Domain
}

func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.AddServer(cfg.Host.PublicURL)
	cfg.API.OpenAPI.Apply(spec)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, spec, runtime, domain, cfg); err != nil {
		return nil, err
	}

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return &Module{
		Module:  m,
		runtime: runtime,
		domain:  domain,
	}, nil
}

// Start stores the host's own agent record and starts plugin services. The
// database must already be connected. Services stop when lc shuts down.
func (m *Module) Start(lc *lifecycle.Coordinator) error {
	ctx := lc.Context()
	h := m.domain.Host

	agent, err := h.EnsureAgent(ctx)
	if err != nil {
		return err
	}
	m.runtime.Logger.Info("agent ready", "id", agent.ID, "name", agent.Name)

	if err := h.Start(ctx); err != nil {
		return fmt.Errorf("start host: %w", err)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := h.Stop(context.Background()); err != nil {
			m.runtime.Logger.Error("host stop error", "error", err)
		}
	})
	return nil
}
