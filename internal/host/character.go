package host

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"
)

// Character describes the agent the host runs as.
type Character struct {
	ID       string              `json:"id,omitempty"`
	Name     string              `json:"name"`
	Username string              `json:"username,omitempty"`
	Bio      StringList          `json:"bio,omitempty"`
	System   string              `json:"system,omitempty"`
	Topics   []string            `json:"topics,omitempty"`
	Style    map[string][]string `json:"style,omitempty"`
	Settings map[string]any      `json:"settings,omitempty"`
	Plugins  []string            `json:"plugins,omitempty"`
}

// StringList decodes either a single string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = list
	return nil
}

// LoadCharacter reads a character definition from a JSON or YAML file.
func LoadCharacter(path string) (*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read character: %w", err)
	}
	return ParseCharacter(data)
}

// ParseCharacter decodes a JSON or YAML character definition.
func ParseCharacter(data []byte) (*Character, error) {
	var c Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidCharacter)
	}
	if c.ID != "" {
		if _, err := uuid.Parse(c.ID); err != nil {
			return nil, fmt.Errorf("%w: invalid id: %v", ErrInvalidCharacter, err)
		}
	}
	return &c, nil
}

// AgentID is the configured id, or a stable id derived from the name.
func (c *Character) AgentID() uuid.UUID {
	if id, err := uuid.Parse(c.ID); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(c.Name))
}

// Avatar returns settings.avatar when it is a string.
func (c *Character) Avatar() string {
	if c.Settings == nil {
		return ""
	}
	if v, ok := c.Settings["avatar"].(string); ok {
		return v
	}
	return ""
}

// Agent builds the stored record for the character itself.
func (c *Character) Agent() Agent {
	bio := []string(c.Bio)
	if bio == nil {
		bio = []string{}
	}
	topics := c.Topics
	if topics == nil {
		topics = []string{}
	}
	plugins := c.Plugins
	if plugins == nil {
		plugins = []string{}
	}
	return Agent{
		ID:       c.AgentID(),
		Name:     c.Name,
		Username: c.Username,
		System:   c.System,
		Bio:      bio,
		Topics:   topics,
		Plugins:  plugins,
		Settings: AgentSettings{Avatar: c.Avatar()},
		Enabled:  true,
		Status:   StatusActive,
		Source:   "character",
	}
}
