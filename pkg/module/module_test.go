package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/agent-starter/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestNew_InvalidPrefix(t *testing.T) {
	tests := []string{"", "api", "/api/v1"}

	for _, prefix := range tests {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.HandlerFunc(echoPath))
		})
	}
}

func TestModule_Serve(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api", "/"},
		{"/api/plugins/starter/helloworld", "/plugins/starter/helloworld"},
	}

	m := module.New("/api", http.HandlerFunc(echoPath))

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			m.Serve(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := w.Body.String(); got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModule_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) module.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m := module.New("/api", http.HandlerFunc(echoPath))
	m.Use(tag("request-id"))
	m.Use(tag("cors"))
	m.Use(tag("logger"))

	m.Serve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/agents", nil))

	want := []string{"request-id", "cors", "logger"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRouter(t *testing.T) {
	r := module.NewRouter()
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Mount(module.New("/api", http.HandlerFunc(echoPath)))
	r.Mount(module.New("/app", http.HandlerFunc(echoPath)))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"native", "/healthz", http.StatusOK, "ok"},
		{"native trailing slash", "/healthz/", http.StatusOK, "ok"},
		{"api module", "/api/agents", http.StatusOK, "/agents"},
		{"api trailing slash", "/api/agents/", http.StatusOK, "/agents"},
		{"app root", "/app/", http.StatusOK, "/"},
		{"prefix lookalike", "/apis", http.StatusNotFound, ""},
		{"unknown", "/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
