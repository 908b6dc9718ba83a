package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/agent-starter/internal/agents"
	"github.com/JaimeStill/agent-starter/internal/config"
	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/openapi"
	"github.com/JaimeStill/agent-starter/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) error {
	agentsHandler := agents.NewHandler(domain.Agents, runtime.Logger, runtime.Pagination)
	runtimeHandler := host.NewHandler(domain.Host, runtime.Logger)

	groups := []routes.Group{
		agentsHandler.Routes(),
		runtimeHandler.Routes(),
	}

	for _, p := range domain.Plugins {
		group, err := host.Mount(domain.Host, p)
		if err != nil {
			return fmt.Errorf("mount plugin %s: %w", p.Name, err)
		}
		groups = append(groups, group)
	}

	routes.Register(mux, cfg.API.BasePath, spec, groups...)
	return nil
}
