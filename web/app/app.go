// Package app provides the web application module with embedded templates and assets.
package app

import (
	"embed"
	"net/http"

	"github.com/JaimeStill/agent-starter/pkg/module"
	"github.com/JaimeStill/agent-starter/pkg/web"
)

//go:embed dist/*
var distFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

// Options locates the API endpoints the pages call from the browser.
type Options struct {
	CreateEndpoint string
	AgentsEndpoint string
}

// Endpoints is the page data shared by every view.
type Endpoints struct {
	Create string
	Agents string
}

func views(opts Options) []web.PageDef {
	data := Endpoints{Create: opts.CreateEndpoint, Agents: opts.AgentsEndpoint}
	return []web.PageDef{
		{Route: "/{$}", Template: "create.html", Title: "Create Agent", Bundle: "app", Data: data},
		{Route: "/agents", Template: "agents.html", Title: "Agents", Bundle: "app", Data: data},
	}
}

var errorViews = []web.PageDef{
	{Template: "404.html", Title: "Not Found", Bundle: "app"},
}

// NewModule creates the app module configured for the given base path.
func NewModule(basePath string, opts Options) (*module.Module, error) {
	pages := views(opts)
	all := append(append([]web.PageDef{}, pages...), errorViews...)

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		basePath,
		all,
	)
	if err != nil {
		return nil, err
	}

	return module.New(basePath, buildRouter(ts, pages)), nil
}

func buildRouter(ts *web.TemplateSet, pages []web.PageDef) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(
		"app.html",
		errorViews[0],
		http.StatusNotFound,
	))

	for _, page := range pages {
		r.HandleFunc("GET "+page.Route, ts.PageHandler("app.html", page))
	}

	r.Handle("GET /dist/", web.DistServer(distFS, "dist", "/dist/"))

	return r
}
