// Package host is the agent runtime that plugins run inside. It owns the
// character, the agent store, and everything registered plugins contribute.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Runtime is the surface plugin route handlers see.
type Runtime interface {
	AgentID() uuid.UUID
	Character() *Character
	GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error)
	GetAgents(ctx context.Context) ([]Agent, error)
	// CreateAgent reports false with ErrAgentExists when the normalized
	// name is already taken.
	CreateAgent(ctx context.Context, agent Agent) (bool, error)
	Plugins() []string
	Actions() []string
	Providers() []string
	ServiceTypes() []string
	Routes() []RouteInfo
}

// Store persists agent records.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)
	All(ctx context.Context) ([]Agent, error)
	Create(ctx context.Context, agent Agent) (*Agent, error)
	Save(ctx context.Context, agent Agent) (*Agent, error)
}

// Host implements Runtime over a Store and a set of registered plugins.
type Host struct {
	character *Character
	agentID   uuid.UUID
	store     Store
	logger    *slog.Logger

	mu      sync.RWMutex
	plugins []Plugin
	routes  []RouteInfo
	started []Service
}

func New(character *Character, store Store, logger *slog.Logger) *Host {
	return &Host{
		character: character,
		agentID:   character.AgentID(),
		store:     store,
		logger:    logger.With("system", "host"),
	}
}

func (h *Host) AgentID() uuid.UUID {
	return h.agentID
}

func (h *Host) Character() *Character {
	return h.character
}

func (h *Host) GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error) {
	return h.store.Find(ctx, id)
}

func (h *Host) GetAgents(ctx context.Context) ([]Agent, error) {
	return h.store.All(ctx)
}

func (h *Host) CreateAgent(ctx context.Context, agent Agent) (bool, error) {
	if _, err := h.store.Create(ctx, agent); err != nil {
		return false, err
	}
	h.logger.Info("agent created", "id", agent.ID, "name", agent.Name)
	return true, nil
}

// EnsureAgent stores the character's own record, updating it when present.
func (h *Host) EnsureAgent(ctx context.Context) (*Agent, error) {
	record := h.character.Agent()
	record.Plugins = h.Plugins()

	a, err := h.store.Save(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("ensure agent %s: %w", h.character.Name, err)
	}
	return a, nil
}

// Register adds a plugin. Plugins are kept in descending priority order.
func (h *Host) Register(p Plugin) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.plugins {
		if existing.Name == p.Name {
			return fmt.Errorf("%w: %s", ErrPluginExists, p.Name)
		}
	}

	h.plugins = append(h.plugins, p)
	sort.SliceStable(h.plugins, func(i, j int) bool {
		return h.plugins[i].Priority > h.plugins[j].Priority
	})

	for _, r := range p.Routes {
		h.routes = append(h.routes, RouteInfo{
			Name:   r.Name,
			Path:   r.Path,
			Type:   r.Type,
			Public: r.Public,
		})
	}

	h.logger.Info("plugin registered", "plugin", p.Name, "priority", p.Priority)
	return nil
}

func (h *Host) Plugins() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.plugins))
	for i, p := range h.plugins {
		names[i] = p.Name
	}
	return names
}

func (h *Host) Actions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := []string{}
	for _, p := range h.plugins {
		for _, a := range p.Actions {
			names = append(names, a.Name)
		}
	}
	return names
}

func (h *Host) Providers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := []string{}
	for _, p := range h.plugins {
		for _, pr := range p.Providers {
			names = append(names, pr.Name)
		}
	}
	return names
}

func (h *Host) ServiceTypes() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	types := []string{}
	for _, p := range h.plugins {
		for _, s := range p.Services {
			types = append(types, s.Type)
		}
	}
	return types
}

func (h *Host) Routes() []RouteInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]RouteInfo, len(h.routes))
	copy(out, h.routes)
	return out
}

// Models lists the model types some plugin can serve.
func (h *Host) Models() []ModelType {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[ModelType]bool)
	types := []ModelType{}
	for _, p := range h.plugins {
		for t := range p.Models {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Start starts every plugin service and emits WORLD_CONNECTED. A service
// that fails to start stops the ones already running.
func (h *Host) Start(ctx context.Context) error {
	h.mu.RLock()
	var services []Service
	for _, p := range h.plugins {
		services = append(services, p.Services...)
	}
	h.mu.RUnlock()

	for _, s := range services {
		if s.Start != nil {
			if err := s.Start(ctx, h); err != nil {
				return errors.Join(fmt.Errorf("start service %s: %w", s.Type, err), h.Stop(ctx))
			}
		}
		h.mu.Lock()
		h.started = append(h.started, s)
		h.mu.Unlock()
		h.logger.Info("service started", "service", s.Type)
	}

	return h.Emit(ctx, EventWorldConnected, map[string]any{
		"agentId": h.agentID.String(),
		"name":    h.character.Name,
	})
}

// Stop stops started services in reverse order.
func (h *Host) Stop(ctx context.Context) error {
	h.mu.Lock()
	started := h.started
	h.started = nil
	h.mu.Unlock()

	var errs []error
	for i := len(started) - 1; i >= 0; i-- {
		s := started[i]
		if s.Stop == nil {
			continue
		}
		if err := s.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop service %s: %w", s.Type, err))
			continue
		}
		h.logger.Info("service stopped", "service", s.Type)
	}
	return errors.Join(errs...)
}

// Emit runs every handler subscribed to event. Handler errors are joined.
func (h *Host) Emit(ctx context.Context, event Event, payload map[string]any) error {
	h.mu.RLock()
	var handlers []EventHandler
	for _, p := range h.plugins {
		handlers = append(handlers, p.Events[event]...)
	}
	h.mu.RUnlock()

	var errs []error
	for _, handle := range handlers {
		if err := handle(ctx, h, payload); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		h.logger.Warn("event handler failed", "event", event, "error", err)
		return err
	}
	return nil
}

// Invocation is the outcome of running an action against a message.
type Invocation struct {
	Action  string       `json:"action"`
	Result  ActionResult `json:"result"`
	Replies []Content    `json:"replies"`
}

// InvokeAction runs the action named name, or with name as a simile, on msg.
func (h *Host) InvokeAction(ctx context.Context, name string, msg Message) (*Invocation, error) {
	if msg.Text == "" {
		return nil, fmt.Errorf("%w: text required", ErrInvalidMessage)
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	action, ok := h.findAction(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, name)
	}

	event := EventMessageReceived
	if msg.Source == "voice" {
		event = EventVoiceMessageReceived
	}
	// Emit logs handler failures; they never block the action.
	_ = h.Emit(ctx, event, map[string]any{
		"messageId": msg.ID.String(),
		"text":      msg.Text,
		"source":    msg.Source,
	})

	if action.Validate != nil && !action.Validate(ctx, h, msg) {
		return nil, fmt.Errorf("%w: %s", ErrActionRejected, action.Name)
	}

	inv := &Invocation{Action: action.Name, Replies: []Content{}}
	cb := func(ctx context.Context, c Content) error {
		inv.Replies = append(inv.Replies, c)
		return nil
	}

	result, err := action.Handler(ctx, h, msg, cb)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", action.Name, err)
	}
	inv.Result = result
	return inv, nil
}

func (h *Host) findAction(name string) (Action, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, p := range h.plugins {
		for _, a := range p.Actions {
			if a.Matches(name) {
				return a, true
			}
		}
	}
	return Action{}, false
}

// UseModel dispatches to the highest priority plugin serving modelType.
func (h *Host) UseModel(ctx context.Context, modelType ModelType, params ModelParams) (string, error) {
	h.mu.RLock()
	var handler ModelHandler
	for _, p := range h.plugins {
		if m, ok := p.Models[modelType]; ok {
			handler = m
			break
		}
	}
	h.mu.RUnlock()

	if handler == nil {
		return "", fmt.Errorf("%w: %s", ErrModelNotFound, modelType)
	}
	return handler(ctx, h, params)
}

// ComposeState collects every provider result for msg concurrently.
// Providers that fail are logged and omitted.
func (h *Host) ComposeState(ctx context.Context, msg Message) (map[string]ProviderResult, error) {
	h.mu.RLock()
	var providers []Provider
	for _, p := range h.plugins {
		providers = append(providers, p.Providers...)
	}
	h.mu.RUnlock()

	var mu sync.Mutex
	state := make(map[string]ProviderResult, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range providers {
		if p.Get == nil {
			continue
		}
		g.Go(func() error {
			res, err := p.Get(gctx, h, msg)
			if err != nil {
				h.logger.Warn("provider failed", "provider", p.Name, "error", err)
				return nil
			}
			mu.Lock()
			state[p.Name] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}
