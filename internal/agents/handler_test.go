package agents_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/agent-starter/internal/agents"
	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/pagination"
	"github.com/JaimeStill/agent-starter/pkg/routes"
	"github.com/google/uuid"
)

type fakeSystem struct {
	agents   map[uuid.UUID]host.Agent
	startErr error

	lastPage    pagination.PageRequest
	lastFilters agents.Filters
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters agents.Filters) (*pagination.PageResult[host.Agent], error) {
	f.lastPage = page
	f.lastFilters = filters
	data := make([]host.Agent, 0, len(f.agents))
	for _, a := range f.agents {
		data = append(data, a)
	}
	result := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return nil, host.ErrAgentNotFound
	}
	return &a, nil
}

func (f *fakeSystem) Start(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	a, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = host.StatusActive
	return a, nil
}

func (f *fakeSystem) Stop(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	a, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = host.StatusInactive
	return a, nil
}

func newMux(sys agents.System) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := agents.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 25, MaxPageSize: 100})

	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, h.Routes())
	return mux
}

func scout() host.Agent {
	return host.Agent{
		ID:     uuid.New(),
		Name:   "Scout",
		Status: host.StatusInactive,
		Settings: host.AgentSettings{Secrets: map[string]string{
			host.SecretTelegramBotToken: "123:abc",
		}},
	}
}

func TestHandler_List(t *testing.T) {
	a := scout()
	sys := &fakeSystem{agents: map[uuid.UUID]host.Agent{a.ID: a}}
	mux := newMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents?page=2&page_size=500&name=sc&status=active&sort=-CreatedAt", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), "123:abc") {
		t.Error("response exposes the bot token")
	}

	var env struct {
		Data pagination.PageResult[host.Agent] `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data.Data) != 1 {
		t.Errorf("data = %d agents, want 1", len(env.Data.Data))
	}

	if sys.lastPage.Page != 2 || sys.lastPage.PageSize != 100 {
		t.Errorf("page = %d/%d, want 2/100", sys.lastPage.Page, sys.lastPage.PageSize)
	}
	if len(sys.lastPage.Sort) != 1 || sys.lastPage.Sort[0].Field != "CreatedAt" || !sys.lastPage.Sort[0].Descending {
		t.Errorf("sort = %+v, want -CreatedAt", sys.lastPage.Sort)
	}
	if sys.lastFilters.Name == nil || *sys.lastFilters.Name != "sc" {
		t.Errorf("name filter = %v, want sc", sys.lastFilters.Name)
	}
	if sys.lastFilters.Status == nil || *sys.lastFilters.Status != "active" {
		t.Errorf("status filter = %v, want active", sys.lastFilters.Status)
	}
}

func TestHandler_Endpoints(t *testing.T) {
	a := scout()
	missing := uuid.New()

	tests := []struct {
		name       string
		method     string
		path       string
		startErr   error
		wantStatus int
		wantText   string
	}{
		{"find", http.MethodGet, "/agents/" + a.ID.String(), nil, http.StatusOK, `"name":"Scout"`},
		{"find missing", http.MethodGet, "/agents/" + missing.String(), nil, http.StatusNotFound, "AGENT_NOT_FOUND"},
		{"find bad id", http.MethodGet, "/agents/nope", nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"start", http.MethodPost, "/agents/" + a.ID.String() + "/start", nil, http.StatusOK, `"status":"active"`},
		{"start no token", http.MethodPost, "/agents/" + a.ID.String() + "/start", agents.ErrChannelNotConfigured, http.StatusUnprocessableEntity, "CHANNEL_NOT_CONFIGURED"},
		{"start bad token", http.MethodPost, "/agents/" + a.ID.String() + "/start", fmt.Errorf("%w: Unauthorized", agents.ErrChannel), http.StatusBadGateway, "CHANNEL_UNAVAILABLE"},
		{"start disabled", http.MethodPost, "/agents/" + a.ID.String() + "/start", agents.ErrDisabled, http.StatusConflict, "AGENT_DISABLED"},
		{"stop", http.MethodPost, "/agents/" + a.ID.String() + "/stop", nil, http.StatusOK, `"status":"inactive"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{agents: map[uuid.UUID]host.Agent{a.ID: a}, startErr: tt.startErr}
			mux := newMux(sys)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantText) {
				t.Errorf("body = %s, want it to contain %q", rec.Body.String(), tt.wantText)
			}
			if strings.Contains(rec.Body.String(), "123:abc") {
				t.Error("response exposes the bot token")
			}
		})
	}
}
