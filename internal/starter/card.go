package starter

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/handlers"
	"github.com/google/uuid"
)

// Card is the agent-to-agent descriptor returned by GET /a2a-card.
type Card struct {
	AgentID     uuid.UUID   `json:"agentId"`
	Name        string      `json:"name"`
	Username    string      `json:"username,omitempty"`
	Version     string      `json:"version"`
	Description string      `json:"description"`
	Topics      []string    `json:"topics"`
	Plugins     []string    `json:"plugins"`
	Avatar      string      `json:"avatar,omitempty"`
	Status      host.Status `json:"status,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// A2ACard handles GET /a2a-card. The agent is taken from the agentId query
// parameter, then id, then the runtime's own agent.
func (s *Starter) A2ACard(w http.ResponseWriter, r *http.Request, rt host.Runtime) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("agentId"))
	if raw == "" {
		raw = strings.TrimSpace(q.Get("id"))
	}
	if raw == "" && rt.AgentID() != uuid.Nil {
		raw = rt.AgentID().String()
	}
	if raw == "" {
		handlers.RespondFailure(w, s.logger, http.StatusBadRequest, "AGENT_ID_REQUIRED", "Agent id is required")
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		// A malformed id cannot name a stored agent.
		handlers.RespondFailure(w, s.logger, http.StatusNotFound, "AGENT_NOT_FOUND", "Agent "+raw+" not found")
		return
	}

	a, err := rt.GetAgent(r.Context(), id)
	switch {
	case errors.Is(err, host.ErrAgentNotFound), err == nil && a == nil:
		handlers.RespondFailure(w, s.logger, http.StatusNotFound, "AGENT_NOT_FOUND", "Agent "+id.String()+" not found")
		return
	case err != nil:
		handlers.RespondFailure(w, s.logger, http.StatusInternalServerError, "AGENT_INFO_FAILED", err.Error())
		return
	}

	handlers.RespondSuccess(w, http.StatusOK, Card{
		AgentID:     a.ID,
		Name:        a.Name,
		Username:    a.Username,
		Version:     s.cfg.A2AVersion,
		Description: describe(a),
		Topics:      orEmpty(a.Topics),
		Plugins:     orEmpty(a.Plugins),
		Avatar:      a.Settings.Avatar,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		GeneratedAt: s.now().UTC(),
	})
}

// describe prefers the bio and falls back to the system prompt.
func describe(a *host.Agent) string {
	if len(a.Bio) > 0 {
		return strings.Join(a.Bio, " ")
	}
	return a.System
}
