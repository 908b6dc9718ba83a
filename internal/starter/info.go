package starter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/handlers"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AgentInfo is the runtime snapshot returned by GET /agent-info.
type AgentInfo struct {
	AgentID   uuid.UUID        `json:"agentId"`
	Name      string           `json:"name"`
	Character CharacterInfo    `json:"character"`
	Plugins   []string         `json:"plugins"`
	Actions   []string         `json:"actions"`
	Providers []string         `json:"providers"`
	Services  []string         `json:"services"`
	Routes    []host.RouteInfo `json:"routes"`
	Registry  RegistryInfo     `json:"registry"`
	Timestamp time.Time        `json:"timestamp"`
}

// CharacterInfo is the public part of the runtime character.
type CharacterInfo struct {
	Name     string              `json:"name"`
	Bio      []string            `json:"bio"`
	System   string              `json:"system"`
	Topics   []string            `json:"topics"`
	Style    map[string][]string `json:"style"`
	Settings map[string]any      `json:"settings"`
}

// RegistryInfo summarizes what the host has stored.
type RegistryInfo struct {
	TotalAgents int          `json:"totalAgents"`
	StoredAgent *StoredAgent `json:"storedAgent"`
}

// StoredAgent is the stored record of the current agent.
type StoredAgent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// recovered turns a panic in fn into an error so errgroup can report it.
func recovered(what string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%s: %v", what, rec)
			}
		}()
		return fn()
	}
}

// AgentInfo handles GET /agent-info. The stored record and the roster are
// fetched concurrently and each degrades to null or empty on failure.
func (s *Starter) AgentInfo(w http.ResponseWriter, r *http.Request, rt host.Runtime) {
	var (
		stored *host.Agent
		roster []host.Agent
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(recovered("stored agent", func() error {
		a, err := rt.GetAgent(ctx, rt.AgentID())
		if err != nil {
			s.logger.Debug("stored agent unavailable", "error", err)
			return nil
		}
		stored = a
		return nil
	}))
	g.Go(recovered("agent roster", func() error {
		all, err := rt.GetAgents(ctx)
		if err != nil {
			s.logger.Debug("agent roster unavailable", "error", err)
			return nil
		}
		roster = all
		return nil
	}))
	if err := g.Wait(); err != nil {
		handlers.RespondFailure(w, s.logger, http.StatusInternalServerError, "AGENT_INFO_FAILED", err.Error())
		return
	}

	info := AgentInfo{
		AgentID:   rt.AgentID(),
		Character: characterInfo(rt.Character()),
		Plugins:   orEmpty(rt.Plugins()),
		Actions:   orEmpty(rt.Actions()),
		Providers: orEmpty(rt.Providers()),
		Services:  orEmpty(rt.ServiceTypes()),
		Routes:    rt.Routes(),
		Registry:  RegistryInfo{TotalAgents: len(roster)},
		Timestamp: s.now().UTC(),
	}
	info.Name = info.Character.Name
	if info.Routes == nil {
		info.Routes = []host.RouteInfo{}
	}

	if stored != nil {
		sa := &StoredAgent{
			ID:        stored.ID,
			Name:      stored.Name,
			Source:    stored.Source,
			CreatedAt: stored.CreatedAt,
		}
		if sa.ID == uuid.Nil {
			sa.ID = info.AgentID
		}
		if sa.Name == "" {
			sa.Name = info.Name
		}
		info.Registry.StoredAgent = sa
	}

	handlers.RespondSuccess(w, http.StatusOK, info)
}

// characterInfo copies the character without settings.secrets.
func characterInfo(c *host.Character) CharacterInfo {
	info := CharacterInfo{
		Bio:      []string{},
		Topics:   []string{},
		Style:    map[string][]string{},
		Settings: map[string]any{},
	}
	if c == nil {
		return info
	}

	info.Name = c.Name
	info.System = c.System
	if c.Bio != nil {
		info.Bio = c.Bio
	}
	if c.Topics != nil {
		info.Topics = c.Topics
	}
	if c.Style != nil {
		info.Style = c.Style
	}
	for k, v := range c.Settings {
		if k == "secrets" {
			continue
		}
		info.Settings[k] = v
	}
	return info
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
