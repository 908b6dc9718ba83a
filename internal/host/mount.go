package host

import (
	"net/http"

	"github.com/JaimeStill/agent-starter/pkg/routes"
)

// Mount registers p with h and returns its routes grouped under
// /plugins/{name}, each handler bound to h.
func Mount(h *Host, p Plugin) (routes.Group, error) {
	if err := h.Register(p); err != nil {
		return routes.Group{}, err
	}

	group := routes.Group{
		Prefix:      "/plugins/" + p.Name,
		Tags:        []string{"Plugin: " + p.Name},
		Description: p.Description,
		Schemas:     p.Schemas,
	}

	for _, r := range p.Routes {
		group.Routes = append(group.Routes, routes.Route{
			Method:  r.Type,
			Pattern: r.Path,
			Handler: bind(r.Handler, h),
			OpenAPI: r.OpenAPI,
		})
	}

	return group, nil
}

func bind(handler RouteHandler, rt Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(w, r, rt)
	}
}
