package host

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-starter/pkg/handlers"
	"github.com/JaimeStill/agent-starter/pkg/routes"
)

// Handler exposes the runtime's actions, models, and providers over HTTP.
type Handler struct {
	host   *Host
	logger *slog.Logger
}

func NewHandler(h *Host, logger *slog.Logger) *Handler {
	return &Handler{
		host:   h,
		logger: logger.With("handler", "runtime"),
	}
}

func (hd *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/runtime",
		Tags:        []string{"Runtime"},
		Description: "Registered plugin capabilities of the running agent",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: hd.Describe, OpenAPI: Spec.Describe},
			{Method: "POST", Pattern: "/actions/{name}", Handler: hd.InvokeAction, OpenAPI: Spec.InvokeAction},
			{Method: "POST", Pattern: "/models/{type}", Handler: hd.UseModel, OpenAPI: Spec.UseModel},
			{Method: "POST", Pattern: "/state", Handler: hd.ComposeState, OpenAPI: Spec.ComposeState},
		},
		Schemas: Spec.Schemas(),
	}
}

// Description summarizes what the runtime has registered.
type Description struct {
	AgentID   string      `json:"agentId"`
	Name      string      `json:"name"`
	Plugins   []string    `json:"plugins"`
	Actions   []string    `json:"actions"`
	Providers []string    `json:"providers"`
	Services  []string    `json:"services"`
	Models    []ModelType `json:"models"`
	Routes    []RouteInfo `json:"routes"`
}

func (hd *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	handlers.RespondSuccess(w, http.StatusOK, Description{
		AgentID:   hd.host.AgentID().String(),
		Name:      hd.host.Character().Name,
		Plugins:   hd.host.Plugins(),
		Actions:   hd.host.Actions(),
		Providers: hd.host.Providers(),
		Services:  hd.host.ServiceTypes(),
		Models:    hd.host.Models(),
		Routes:    hd.host.Routes(),
	})
}

func (hd *Handler) InvokeAction(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		handlers.RespondFailure(w, hd.logger, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv, err := hd.host.InvokeAction(r.Context(), r.PathValue("name"), msg)
	if err != nil {
		hd.fail(w, err)
		return
	}
	handlers.RespondSuccess(w, http.StatusOK, inv)
}

func (hd *Handler) UseModel(w http.ResponseWriter, r *http.Request) {
	var params ModelParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		handlers.RespondFailure(w, hd.logger, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	modelType := ModelType(r.PathValue("type"))
	text, err := hd.host.UseModel(r.Context(), modelType, params)
	if err != nil {
		hd.fail(w, err)
		return
	}
	handlers.RespondSuccess(w, http.StatusOK, map[string]any{
		"model": modelType,
		"text":  text,
	})
}

func (hd *Handler) ComposeState(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		handlers.RespondFailure(w, hd.logger, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	state, err := hd.host.ComposeState(r.Context(), msg)
	if err != nil {
		hd.fail(w, err)
		return
	}
	handlers.RespondSuccess(w, http.StatusOK, state)
}

func (hd *Handler) fail(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)
	handlers.RespondFailure(w, hd.logger, status, errorCode(status), err.Error())
}

func errorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "RUNTIME_ERROR"
	}
}
