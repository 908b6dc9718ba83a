package main

import (
	"net/http"

	"github.com/JaimeStill/agent-starter/internal/api"
	"github.com/JaimeStill/agent-starter/internal/config"
	"github.com/JaimeStill/agent-starter/internal/infrastructure"
	"github.com/JaimeStill/agent-starter/pkg/middleware"
	"github.com/JaimeStill/agent-starter/pkg/module"
	"github.com/JaimeStill/agent-starter/web/app"
	"github.com/JaimeStill/agent-starter/web/scalar"
)

type Modules struct {
	API    *api.Module
	App    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	appModule, err := app.NewModule("/app", app.Options{
		CreateEndpoint: cfg.API.BasePath + "/plugins/starter/agents",
		AgentsEndpoint: cfg.API.BasePath + "/agents",
	})
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.Logger(infra.Logger))

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")

	return &Modules{
		API:    apiModule,
		App:    appModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API.Module)
	router.Mount(m.App)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusFound)
	})

	return router
}
