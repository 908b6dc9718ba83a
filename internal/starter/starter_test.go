package starter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/internal/registry"
	"github.com/JaimeStill/agent-starter/internal/starter"
	"github.com/google/uuid"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRuntime struct {
	mu sync.Mutex

	agentID   uuid.UUID
	character *host.Character
	agents    []host.Agent
	routes    []host.RouteInfo

	getAgentsErr error
	getAgentErr  error
	createErr    error
	createFalse  bool

	getAgentsPanic any

	getAgentsCalls int
	created        []host.Agent
}

func newRuntime() *fakeRuntime {
	c := &host.Character{
		Name:   "Eliza",
		System: "You are Eliza.",
		Bio:    host.StringList{"A helpful agent"},
		Topics: []string{"ai"},
		Settings: map[string]any{
			"avatar":  "https://example.com/eliza.png",
			"secrets": map[string]any{"KEY": "value"},
		},
	}
	return &fakeRuntime{
		agentID:   c.AgentID(),
		character: c,
		routes: []host.RouteInfo{
			{Name: "helloworld", Path: "/helloworld", Type: "GET"},
			{Name: "agent-info", Path: "/agent-info", Type: "GET"},
			{Name: "a2a-card", Path: "/a2a-card", Type: "GET", Public: true},
			{Name: "create-telegram-agent", Path: "/agents", Type: "POST"},
		},
	}
}

func (f *fakeRuntime) AgentID() uuid.UUID          { return f.agentID }
func (f *fakeRuntime) Character() *host.Character { return f.character }

func (f *fakeRuntime) GetAgent(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getAgentErr != nil {
		return nil, f.getAgentErr
	}
	for _, a := range append(f.agents, f.created...) {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, host.ErrAgentNotFound
}

func (f *fakeRuntime) GetAgents(ctx context.Context) ([]host.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getAgentsCalls++
	if f.getAgentsPanic != nil {
		panic(f.getAgentsPanic)
	}
	if f.getAgentsErr != nil {
		return nil, f.getAgentsErr
	}
	return append([]host.Agent{}, f.agents...), nil
}

func (f *fakeRuntime) CreateAgent(ctx context.Context, agent host.Agent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return false, f.createErr
	}
	if f.createFalse {
		return false, nil
	}
	f.created = append(f.created, agent)
	return true, nil
}

func (f *fakeRuntime) Plugins() []string      { return []string{starter.Name} }
func (f *fakeRuntime) Actions() []string      { return []string{"HELLO_WORLD"} }
func (f *fakeRuntime) Providers() []string    { return []string{"HELLO_WORLD_PROVIDER"} }
func (f *fakeRuntime) ServiceTypes() []string { return []string{starter.Name} }
func (f *fakeRuntime) Routes() []host.RouteInfo {
	return f.routes
}

func (f *fakeRuntime) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeRegistrar struct {
	enabled bool
	receipt *registry.Receipt
	err     error
	calls   []registry.Registration
}

func (f *fakeRegistrar) Enabled() bool { return f.enabled }

func (f *fakeRegistrar) Register(ctx context.Context, reg registry.Registration) (*registry.Receipt, error) {
	f.calls = append(f.calls, reg)
	return f.receipt, f.err
}

var errBoom = errors.New("boom")

func newStarter(reg registry.Registrar) *starter.Starter {
	return starter.New(starter.Config{}, starter.Options{
		Registrar: reg,
		Logger:    discard(),
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return v
}
