package handlers_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/agent-starter/pkg/handlers"
)

func TestRespondSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondSuccess(w, http.StatusCreated, map[string]string{"id": "abc"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	want := `{"success":true,"data":{"id":"abc"}}` + "\n"
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestRespondFailure(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"client", http.StatusBadRequest, "level=DEBUG"},
		{"server", http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			w := httptest.NewRecorder()
			handlers.RespondFailure(w, logger, tt.status, "AGENT_CREATE_FAILED", "boom")

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var env handlers.Envelope
			if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Success {
				t.Error("Success = true, want false")
			}
			if env.Error == nil || env.Error.Code != "AGENT_CREATE_FAILED" || env.Error.Message != "boom" {
				t.Errorf("Error = %+v", env.Error)
			}
			if env.Data != nil {
				t.Errorf("Data = %v, want nil", env.Data)
			}
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("log = %q, want %s", buf.String(), tt.wantLevel)
			}
		})
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": "Hello World!"})

	if w.Body.String() != `{"message":"Hello World!"}`+"\n" {
		t.Errorf("body = %q", w.Body.String())
	}
}
