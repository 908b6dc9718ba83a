package starter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/internal/registry"
	"github.com/JaimeStill/agent-starter/pkg/handlers"
	"github.com/google/uuid"
)

// PluginTelegram is always part of a bootstrapped agent's plugin set.
const PluginTelegram = "@elizaos/plugin-telegram"

// DefaultPlugins is the ordered plugin set every bootstrapped agent starts from.
var DefaultPlugins = []string{
	"@elizaos/plugin-sql",
	"@elizaos/plugin-openai",
	"@elizaos/plugin-bootstrap",
	PluginTelegram,
	Name,
}

// DefaultBio is used when the request carries no bio.
var DefaultBio = []string{"Created via API bootstrap"}

// DefaultAvatar is used when neither the request nor the character has one.
const DefaultAvatar = "https://elizaos.github.io/eliza-avatars/Eliza/portrait.png"

// Auto-start outcomes.
const (
	StartSkipped = "skipped"
	StartStarted = "started"
	StartFailed  = "failed"
)

// CreateAgentResult is the data of a successful bootstrap response.
type CreateAgentResult struct {
	AgentID            uuid.UUID           `json:"agentId"`
	Name               string              `json:"name"`
	Plugins            []string            `json:"plugins"`
	TelegramConfigured bool                `json:"telegramConfigured"`
	A2AEndpoint        string              `json:"a2aEndpoint"`
	Registration       RegistrationSummary `json:"registration"`
	AutoStart          AutoStartSummary    `json:"autoStart"`
}

// RegistrationSummary reports the optional identity registration.
type RegistrationSummary struct {
	Attempted bool   `json:"attempted"`
	Success   bool   `json:"success"`
	AgentID   string `json:"agentId,omitempty"`
	AgentURI  string `json:"agentUri,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AutoStartSummary reports the optional start call.
type AutoStartSummary struct {
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// CreateAgent handles POST /agents. Once the agent is stored the response
// is 201; registration and auto-start failures are reported in the body.
func (s *Starter) CreateAgent(w http.ResponseWriter, r *http.Request, rt host.Runtime) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodySize))
	if err != nil {
		handlers.RespondFailure(w, s.logger, http.StatusBadRequest, "INVALID_REQUEST", "Request body could not be read: "+err.Error())
		return
	}

	req, violations := DecodeCreateAgent(body)
	if len(violations) > 0 {
		handlers.RespondFailure(w, s.logger, http.StatusBadRequest, "INVALID_REQUEST", violations.Error())
		return
	}

	existing, err := rt.GetAgents(ctx)
	if err != nil {
		s.logger.Warn("list agents failed, skipping duplicate check", "error", err)
		existing = nil
	}
	if nameTaken(existing, req.Name) {
		s.respondExists(w, req.Name)
		return
	}

	record := s.buildAgent(req, rt)

	created, err := rt.CreateAgent(ctx, record)
	switch {
	case errors.Is(err, host.ErrAgentExists):
		s.respondExists(w, req.Name)
		return
	case err != nil:
		handlers.RespondFailure(w, s.logger, http.StatusInternalServerError, "AGENT_CREATE_FAILED", err.Error())
		return
	case !created:
		handlers.RespondFailure(w, s.logger, http.StatusInternalServerError, "AGENT_CREATE_FAILED", "Failed to persist agent")
		return
	}

	base := s.baseURL(r)
	endpoint := a2aEndpoint(base, record.ID)

	result := CreateAgentResult{
		AgentID:            record.ID,
		Name:               req.Name,
		Plugins:            record.Plugins,
		TelegramConfigured: true,
		A2AEndpoint:        endpoint,
		Registration:       s.register(ctx, record, endpoint),
		AutoStart:          s.autoStart(ctx, base, record.ID, req.ShouldAutoStart()),
	}

	handlers.RespondSuccess(w, http.StatusCreated, result)
}

func (s *Starter) respondExists(w http.ResponseWriter, name string) {
	handlers.RespondFailure(w, s.logger, http.StatusConflict, "AGENT_EXISTS",
		fmt.Sprintf("Agent with name %q already exists", name))
}

func nameTaken(agents []host.Agent, name string) bool {
	key := host.NormalizeName(name)
	for _, a := range agents {
		if host.NormalizeName(a.Name) == key {
			return true
		}
	}
	return false
}

func (s *Starter) buildAgent(req CreateAgentRequest, rt host.Runtime) host.Agent {
	bio := req.Bio
	if bio == nil {
		bio = slices.Clone(DefaultBio)
	}
	topics := req.Topics
	if topics == nil {
		topics = []string{}
	}

	avatar := req.Avatar
	if avatar == "" {
		if c := rt.Character(); c != nil {
			avatar = c.Avatar()
		}
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}

	now := s.now().UTC()
	return host.Agent{
		ID:       uuid.New(),
		Name:     req.Name,
		Username: req.Username,
		System:   req.Prompt,
		Bio:      bio,
		Topics:   topics,
		Plugins:  mergePlugins(req.Plugins),
		Settings: host.AgentSettings{
			Avatar: avatar,
			Secrets: map[string]string{
				host.SecretTelegramBotToken: req.TelegramToken,
			},
		},
		Enabled:   true,
		Status:    host.StatusActive,
		Source:    "api",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// mergePlugins appends requested plugins to the defaults in order, without
// duplicates, and guarantees the Telegram plugin is present.
func mergePlugins(requested []string) []string {
	out := make([]string, 0, len(DefaultPlugins)+len(requested))
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range DefaultPlugins {
		add(p)
	}
	for _, p := range requested {
		add(p)
	}
	add(PluginTelegram)
	return out
}

func (s *Starter) register(ctx context.Context, a host.Agent, endpoint string) RegistrationSummary {
	if !s.registrar.Enabled() {
		return RegistrationSummary{}
	}

	summary := RegistrationSummary{Attempted: true}
	receipt, err := s.registrar.Register(ctx, registry.Registration{
		Name:        a.Name,
		Description: strings.Join(a.Bio, " "),
		Image:       a.Settings.Avatar,
		A2AEndpoint: endpoint,
		A2AVersion:  s.cfg.A2AVersion,
	})
	if receipt != nil {
		summary.AgentID = receipt.AgentID
		summary.AgentURI = receipt.AgentURI
	}
	if err != nil {
		s.logger.Error("identity registration failed", "agent_id", a.ID, "error", err)
		summary.Error = err.Error()
		return summary
	}

	summary.Success = true
	return summary
}

func (s *Starter) autoStart(ctx context.Context, base string, id uuid.UUID, enabled bool) AutoStartSummary {
	if !enabled {
		return AutoStartSummary{Enabled: false, Status: StartSkipped}
	}

	summary := AutoStartSummary{Enabled: true}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, startURL(base, id), nil)
	if err != nil {
		summary.Status = StartFailed
		summary.Error = err.Error()
		return summary
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("auto-start failed for created agent", "agent_id", id, "error", err)
		summary.Status = StartFailed
		summary.Error = err.Error()
		return summary
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		summary.Status = StartStarted
		return summary
	}

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	summary.Status = StartFailed
	summary.Error = string(payload)
	if summary.Error == "" {
		summary.Error = "Failed to start agent"
	}
	return summary
}
