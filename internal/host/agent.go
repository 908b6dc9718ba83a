package host

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a stored agent.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// SecretTelegramBotToken is the settings secret holding the messaging channel credential.
const SecretTelegramBotToken = "TELEGRAM_BOT_TOKEN"

// Agent is the record the host persists for each agent.
type Agent struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Username  string        `json:"username,omitempty"`
	System    string        `json:"system,omitempty"`
	Bio       []string      `json:"bio"`
	Topics    []string      `json:"topics"`
	Plugins   []string      `json:"plugins"`
	Settings  AgentSettings `json:"settings"`
	Enabled   bool          `json:"enabled"`
	Status    Status        `json:"status"`
	Source    string        `json:"source,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AgentSettings holds per-agent presentation settings and channel secrets.
type AgentSettings struct {
	Avatar  string            `json:"avatar,omitempty"`
	Secrets map[string]string `json:"secrets,omitempty"`
}

// Secret returns the named secret or an empty string.
func (s AgentSettings) Secret(name string) string {
	if s.Secrets == nil {
		return ""
	}
	return s.Secrets[name]
}

// Redacted returns a copy with every secret value masked.
func (a Agent) Redacted() Agent {
	if len(a.Settings.Secrets) == 0 {
		return a
	}
	masked := make(map[string]string, len(a.Settings.Secrets))
	for k, v := range a.Settings.Secrets {
		if v == "" {
			masked[k] = ""
			continue
		}
		masked[k] = "********"
	}
	a.Settings.Secrets = masked
	return a
}

// NormalizeName is the comparison key for agent name uniqueness.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
