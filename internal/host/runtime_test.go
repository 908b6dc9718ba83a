package host_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/google/uuid"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memStore struct {
	mu     sync.Mutex
	agents map[uuid.UUID]host.Agent
}

func newStore() *memStore {
	return &memStore{agents: map[uuid.UUID]host.Agent{}}
}

func (s *memStore) Find(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, host.ErrAgentNotFound
	}
	return &a, nil
}

func (s *memStore) All(ctx context.Context) ([]host.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]host.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		out = append(out, a)
	}
	return out, nil
}

func (s *memStore) Create(ctx context.Context, agent host.Agent) (*host.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agents {
		if host.NormalizeName(a.Name) == host.NormalizeName(agent.Name) {
			return nil, host.ErrAgentExists
		}
	}
	s.agents[agent.ID] = agent
	return &agent, nil
}

func (s *memStore) Save(ctx context.Context, agent host.Agent) (*host.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[agent.ID] = agent
	return &agent, nil
}

func newHost(t *testing.T) (*host.Host, *memStore) {
	t.Helper()
	store := newStore()
	return host.New(&host.Character{Name: "Eliza"}, store, discard()), store
}

func testPlugin(name string, priority int) host.Plugin {
	return host.Plugin{
		Name:     name,
		Priority: priority,
		Routes: []host.Route{
			{Name: name + "-ping", Path: "/ping", Type: "GET"},
		},
		Actions: []host.Action{{
			Name:    name + "_ACTION",
			Similes: []string{name + "_ALIAS"},
			Handler: func(ctx context.Context, rt host.Runtime, msg host.Message, cb host.Callback) (host.ActionResult, error) {
				cb(ctx, host.Content{Text: "echo " + msg.Text})
				return host.ActionResult{Text: "done", Success: true}, nil
			},
		}},
		Providers: []host.Provider{{
			Name: name + "_PROVIDER",
			Get: func(context.Context, host.Runtime, host.Message) (host.ProviderResult, error) {
				return host.ProviderResult{Text: name}, nil
			},
		}},
		Services: []host.Service{{Type: name}},
		Models: map[host.ModelType]host.ModelHandler{
			host.ModelTextSmall: func(context.Context, host.Runtime, host.ModelParams) (string, error) {
				return name, nil
			},
		},
	}
}

func TestHost_Register(t *testing.T) {
	h, _ := newHost(t)

	if err := h.Register(testPlugin("low", -10)); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(testPlugin("high", 10)); err != nil {
		t.Fatal(err)
	}

	if got := h.Plugins(); !slices.Equal(got, []string{"high", "low"}) {
		t.Errorf("Plugins() = %v, want [high low]", got)
	}
	if got := h.Actions(); !slices.Equal(got, []string{"high_ACTION", "low_ACTION"}) {
		t.Errorf("Actions() = %v", got)
	}
	if got := h.Providers(); len(got) != 2 {
		t.Errorf("Providers() = %v, want 2", got)
	}
	if got := h.ServiceTypes(); len(got) != 2 {
		t.Errorf("ServiceTypes() = %v, want 2", got)
	}
	if got := h.Routes(); len(got) != 2 {
		t.Errorf("Routes() = %v, want 2", got)
	}
	if got := h.Models(); !slices.Equal(got, []host.ModelType{host.ModelTextSmall}) {
		t.Errorf("Models() = %v", got)
	}

	err := h.Register(testPlugin("low", 0))
	if !errors.Is(err, host.ErrPluginExists) {
		t.Errorf("duplicate Register error = %v, want ErrPluginExists", err)
	}
}

func TestHost_CreateAgent(t *testing.T) {
	h, _ := newHost(t)
	ctx := context.Background()

	ok, err := h.CreateAgent(ctx, host.Agent{ID: uuid.New(), Name: "Scout"})
	if err != nil || !ok {
		t.Fatalf("CreateAgent() = %v, %v, want true, nil", ok, err)
	}

	ok, err = h.CreateAgent(ctx, host.Agent{ID: uuid.New(), Name: " scout "})
	if ok || !errors.Is(err, host.ErrAgentExists) {
		t.Errorf("duplicate CreateAgent() = %v, %v, want false, ErrAgentExists", ok, err)
	}

	all, err := h.GetAgents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("GetAgents() = %d agents, want 1", len(all))
	}
}

func TestHost_EnsureAgent(t *testing.T) {
	h, store := newHost(t)
	h.Register(testPlugin("starter", 0))

	a, err := h.EnsureAgent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != h.AgentID() {
		t.Errorf("ID = %s, want %s", a.ID, h.AgentID())
	}
	if !slices.Equal(a.Plugins, []string{"starter"}) {
		t.Errorf("Plugins = %v, want [starter]", a.Plugins)
	}

	if _, err := store.Find(context.Background(), h.AgentID()); err != nil {
		t.Errorf("stored record missing: %v", err)
	}
}

func TestHost_InvokeAction(t *testing.T) {
	h, _ := newHost(t)
	h.Register(testPlugin("p", 0))
	ctx := context.Background()

	inv, err := h.InvokeAction(ctx, "p_ALIAS", host.Message{Text: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Action != "p_ACTION" {
		t.Errorf("Action = %q, want %q", inv.Action, "p_ACTION")
	}
	if len(inv.Replies) != 1 || inv.Replies[0].Text != "echo hi" {
		t.Errorf("Replies = %+v", inv.Replies)
	}

	tests := []struct {
		name   string
		action string
		msg    host.Message
		want   error
	}{
		{"unknown action", "NOPE", host.Message{Text: "hi"}, host.ErrActionNotFound},
		{"empty text", "p_ACTION", host.Message{}, host.ErrInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.InvokeAction(ctx, tt.action, tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHost_InvokeAction_Rejected(t *testing.T) {
	h, _ := newHost(t)
	p := testPlugin("p", 0)
	p.Actions[0].Validate = func(context.Context, host.Runtime, host.Message) bool { return false }
	h.Register(p)

	_, err := h.InvokeAction(context.Background(), "p_ACTION", host.Message{Text: "hi"})
	if !errors.Is(err, host.ErrActionRejected) {
		t.Errorf("error = %v, want ErrActionRejected", err)
	}
}

func TestHost_InvokeAction_EventFailure(t *testing.T) {
	h, _ := newHost(t)
	p := testPlugin("p", 0)
	received := 0
	p.Events = map[host.Event][]host.EventHandler{
		host.EventMessageReceived: {func(context.Context, host.Runtime, map[string]any) error {
			received++
			return errors.New("handler down")
		}},
	}
	h.Register(p)

	inv, err := h.InvokeAction(context.Background(), "p_ACTION", host.Message{Text: "hi"})
	if err != nil {
		t.Fatalf("InvokeAction() error = %v, want handler failures ignored", err)
	}
	if received != 1 {
		t.Errorf("MESSAGE_RECEIVED handler calls = %d, want 1", received)
	}
	if !inv.Result.Success {
		t.Errorf("Result = %+v, want success", inv.Result)
	}
}

func TestHost_UseModel(t *testing.T) {
	h, _ := newHost(t)
	h.Register(testPlugin("low", -1000))
	h.Register(testPlugin("high", 10))
	ctx := context.Background()

	text, err := h.UseModel(ctx, host.ModelTextSmall, host.ModelParams{Prompt: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "high" {
		t.Errorf("UseModel() = %q, want the higher priority plugin", text)
	}

	if _, err := h.UseModel(ctx, host.ModelTextLarge, host.ModelParams{}); !errors.Is(err, host.ErrModelNotFound) {
		t.Errorf("error = %v, want ErrModelNotFound", err)
	}
}

func TestHost_ComposeState(t *testing.T) {
	h, _ := newHost(t)
	h.Register(testPlugin("a", 0))
	failing := testPlugin("b", 0)
	failing.Providers[0].Get = func(context.Context, host.Runtime, host.Message) (host.ProviderResult, error) {
		return host.ProviderResult{}, errors.New("unavailable")
	}
	h.Register(failing)

	state, err := h.ComposeState(context.Background(), host.Message{Text: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state) != 1 || state["a_PROVIDER"].Text != "a" {
		t.Errorf("state = %+v, want only a_PROVIDER", state)
	}
}

func TestHost_StartStop(t *testing.T) {
	h, _ := newHost(t)

	var order []string
	var connected bool
	p := host.Plugin{
		Name: "p",
		Services: []host.Service{
			{
				Type:  "first",
				Start: func(context.Context, host.Runtime) error { order = append(order, "start first"); return nil },
				Stop:  func(context.Context) error { order = append(order, "stop first"); return nil },
			},
			{
				Type:  "second",
				Start: func(context.Context, host.Runtime) error { order = append(order, "start second"); return nil },
				Stop:  func(context.Context) error { order = append(order, "stop second"); return nil },
			},
		},
		Events: map[host.Event][]host.EventHandler{
			host.EventWorldConnected: {func(ctx context.Context, rt host.Runtime, payload map[string]any) error {
				connected = payload["name"] == "Eliza"
				return nil
			}},
		},
	}
	h.Register(p)

	ctx := context.Background()
	if err := h.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !connected {
		t.Error("WORLD_CONNECTED not emitted")
	}
	if err := h.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	want := []string{"start first", "start second", "stop second", "stop first"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestHost_StartFailureStopsStarted(t *testing.T) {
	h, _ := newHost(t)

	errStart := errors.New("no")
	errStop := errors.New("stuck")

	stopped := false
	h.Register(host.Plugin{
		Name: "p",
		Services: []host.Service{
			{Type: "ok", Stop: func(context.Context) error { stopped = true; return errStop }},
			{Type: "bad", Start: func(context.Context, host.Runtime) error { return errStart }},
		},
	})

	err := h.Start(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !stopped {
		t.Error("started service was not stopped")
	}
	if !errors.Is(err, errStart) {
		t.Errorf("error = %v, want the start failure", err)
	}
	if !errors.Is(err, errStop) {
		t.Errorf("error = %v, want the rollback stop failure", err)
	}
}

func TestHost_Emit(t *testing.T) {
	h, _ := newHost(t)

	calls := 0
	handler := func(context.Context, host.Runtime, map[string]any) error {
		calls++
		return nil
	}
	h.Register(host.Plugin{
		Name:   "a",
		Events: map[host.Event][]host.EventHandler{host.EventWorldJoined: {handler}},
	})
	h.Register(host.Plugin{
		Name: "b",
		Events: map[host.Event][]host.EventHandler{host.EventWorldJoined: {
			handler,
			func(context.Context, host.Runtime, map[string]any) error { return errors.New("fail") },
		}},
	})

	err := h.Emit(context.Background(), host.EventWorldJoined, nil)
	if err == nil {
		t.Error("expected joined handler error")
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}
