package agents

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-starter/pkg/handlers"
	"github.com/JaimeStill/agent-starter/pkg/pagination"
	"github.com/JaimeStill/agent-starter/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides the host API for stored agents.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "agents"),
		pagination: pagination,
	}
}

// Routes returns the route group configuration for agent endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/agents",
		Tags:        []string{"Agents"},
		Description: "Stored agents and their run state",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "/{id}/start", Handler: h.Start, OpenAPI: Spec.Start},
			{Method: "POST", Pattern: "/{id}/stop", Handler: h.Stop, OpenAPI: Spec.Stop},
		},
		Schemas: Spec.Schemas(),
	}
}

// List handles GET /agents. Secrets are masked in every returned record.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		h.fail(w, err)
		return
	}

	for i := range result.Data {
		result.Data[i] = result.Data[i].Redacted()
	}
	handlers.RespondSuccess(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondSuccess(w, http.StatusOK, a.Redacted())
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	a, err := h.sys.Start(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondSuccess(w, http.StatusOK, a.Redacted())
}

func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	a, err := h.sys.Stop(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondSuccess(w, http.StatusOK, a.Redacted())
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "INVALID_REQUEST", "invalid agent id: "+err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondFailure(w, h.logger, MapHTTPStatus(err), errorCode(err), err.Error())
}
