package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/agent-starter/internal/api"
	"github.com/JaimeStill/agent-starter/internal/config"
	"github.com/JaimeStill/agent-starter/internal/infrastructure"
	"github.com/JaimeStill/agent-starter/pkg/middleware"
)

func newModule(t *testing.T) *api.Module {
	t.Helper()
	t.Setenv(config.EnvServiceEnv, "")
	t.Chdir("../../")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	return m
}

func TestModule_Routes(t *testing.T) {
	m := newModule(t)

	if m.Prefix() != "/api" {
		t.Errorf("Prefix() = %q, want /api", m.Prefix())
	}

	w := httptest.NewRecorder()
	m.Serve(w, httptest.NewRequest(http.MethodGet, "/api/plugins/starter/helloworld", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("helloworld status = %d, want 200", w.Code)
	}
	if w.Body.String() != `{"message":"Hello World!"}`+"\n" {
		t.Errorf("helloworld body = %q", w.Body.String())
	}
	if w.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("response has no request id")
	}
}

func TestModule_OpenAPI(t *testing.T) {
	m := newModule(t)

	w := httptest.NewRecorder()
	m.Serve(w, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, tt := range []struct{ path, method string }{
		{"/api/plugins/starter/helloworld", "get"},
		{"/api/plugins/starter/agent-info", "get"},
		{"/api/plugins/starter/a2a-card", "get"},
		{"/api/plugins/starter/agents", "post"},
		{"/api/agents", "get"},
		{"/api/runtime", "get"},
	} {
		if _, ok := doc.Paths[tt.path][tt.method]; !ok {
			t.Errorf("%s %s missing from document", tt.method, tt.path)
		}
	}
}
