package routes

import (
	"net/http"

	"github.com/JaimeStill/agent-starter/pkg/openapi"
)

// Register adds each group to mux relative to the mux root and records the
// operations in spec under basePath, the path the mux is mounted at.
// A nil spec skips documentation.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		group.register(mux, "")
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}
