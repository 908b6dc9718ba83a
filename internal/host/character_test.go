package host_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/google/uuid"
)

func TestParseCharacter_YAML(t *testing.T) {
	data := []byte(`
name: Eliza
username: eliza
system: You are Eliza.
bio: A single line bio
topics: [ai, go]
style:
  chat: [friendly]
settings:
  avatar: https://example.com/eliza.png
plugins: [starter]
`)

	c, err := host.ParseCharacter(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Name != "Eliza" {
		t.Errorf("Name = %q, want %q", c.Name, "Eliza")
	}
	if !slices.Equal([]string(c.Bio), []string{"A single line bio"}) {
		t.Errorf("Bio = %v, want single entry", c.Bio)
	}
	if !slices.Equal(c.Style["chat"], []string{"friendly"}) {
		t.Errorf("Style[chat] = %v", c.Style["chat"])
	}
	if c.Avatar() != "https://example.com/eliza.png" {
		t.Errorf("Avatar() = %q", c.Avatar())
	}
}

func TestParseCharacter_JSON(t *testing.T) {
	id := uuid.New()
	data := []byte(`{"id":"` + id.String() + `","name":"Eliza","bio":["one","two"]}`)

	c, err := host.ParseCharacter(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.AgentID() != id {
		t.Errorf("AgentID() = %s, want %s", c.AgentID(), id)
	}
	if len(c.Bio) != 2 {
		t.Errorf("Bio = %v, want 2 entries", c.Bio)
	}
}

func TestParseCharacter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", `system: hi`},
		{"bad id", `{"name":"Eliza","id":"nope"}`},
		{"bad bio", `{"name":"Eliza","bio":{"a":1}}`},
		{"not yaml", `name: [unclosed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := host.ParseCharacter([]byte(tt.data))
			if !errors.Is(err, host.ErrInvalidCharacter) {
				t.Errorf("error = %v, want ErrInvalidCharacter", err)
			}
		})
	}
}

func TestCharacter_AgentIDStable(t *testing.T) {
	a := &host.Character{Name: "Eliza"}
	b := &host.Character{Name: "Eliza"}
	c := &host.Character{Name: "Other"}

	if a.AgentID() != b.AgentID() {
		t.Error("AgentID() differs for the same name")
	}
	if a.AgentID() == c.AgentID() {
		t.Error("AgentID() equal for different names")
	}
}

func TestCharacter_Agent(t *testing.T) {
	c := &host.Character{
		Name:     "Eliza",
		System:   "You are Eliza.",
		Settings: map[string]any{"avatar": "https://example.com/eliza.png"},
	}

	a := c.Agent()
	if a.ID != c.AgentID() {
		t.Errorf("ID = %s, want %s", a.ID, c.AgentID())
	}
	if a.Bio == nil || a.Topics == nil || a.Plugins == nil {
		t.Error("list fields must not be nil")
	}
	if a.Settings.Avatar != "https://example.com/eliza.png" {
		t.Errorf("Avatar = %q", a.Settings.Avatar)
	}
	if !a.Enabled {
		t.Error("Enabled = false, want true")
	}
}

func TestLoadCharacter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "character.yaml")
	if err := os.WriteFile(path, []byte("name: Eliza\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := host.LoadCharacter(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Eliza" {
		t.Errorf("Name = %q, want %q", c.Name, "Eliza")
	}

	if _, err := host.LoadCharacter(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAgent_Redacted(t *testing.T) {
	a := host.Agent{
		Name: "Scout",
		Settings: host.AgentSettings{Secrets: map[string]string{
			host.SecretTelegramBotToken: "123:abc",
			"EMPTY":                     "",
		}},
	}

	r := a.Redacted()
	if r.Settings.Secret(host.SecretTelegramBotToken) != "********" {
		t.Errorf("token = %q, want masked", r.Settings.Secret(host.SecretTelegramBotToken))
	}
	if r.Settings.Secret("EMPTY") != "" {
		t.Errorf("empty secret = %q, want empty", r.Settings.Secret("EMPTY"))
	}
	if a.Settings.Secret(host.SecretTelegramBotToken) != "123:abc" {
		t.Error("Redacted modified the original")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Scout", "scout"},
		{"  SCOUT  ", "scout"},
		{"scout", "scout"},
	}

	for _, tt := range tests {
		if got := host.NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
