package host

import (
	"context"
	"net/http"

	"github.com/JaimeStill/agent-starter/pkg/openapi"
	"github.com/google/uuid"
)

// Plugin describes everything a plugin contributes to the host.
type Plugin struct {
	Name        string
	Description string
	// Higher priority plugins are consulted first for model handlers.
	Priority  int
	Routes    []Route
	Actions   []Action
	Providers []Provider
	Services  []Service
	Models    map[ModelType]ModelHandler
	Events    map[Event][]EventHandler
	Schemas   map[string]*openapi.Schema
}

// RouteHandler serves a plugin route with access to the host runtime.
type RouteHandler func(w http.ResponseWriter, r *http.Request, rt Runtime)

// Route is a plugin HTTP route. Type is the HTTP method.
type Route struct {
	Name    string
	Path    string
	Type    string
	Public  bool
	Handler RouteHandler
	OpenAPI *openapi.Operation
}

// RouteInfo is the public description of a mounted route.
type RouteInfo struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Type   string `json:"type"`
	Public bool   `json:"public"`
}

// Message is an inbound message handed to actions and providers.
type Message struct {
	ID     uuid.UUID `json:"id"`
	Text   string    `json:"text"`
	Source string    `json:"source,omitempty"`
}

// Content is a reply emitted by an action through its callback.
type Content struct {
	Text    string   `json:"text"`
	Actions []string `json:"actions,omitempty"`
	Source  string   `json:"source,omitempty"`
}

// Callback receives content produced while an action runs.
type Callback func(ctx context.Context, content Content) error

// ActionResult is the outcome of an action handler.
type ActionResult struct {
	Text    string         `json:"text"`
	Values  map[string]any `json:"values,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
}

// Action is a named capability the agent can perform in response to a message.
type Action struct {
	Name        string
	Similes     []string
	Description string
	Validate    func(ctx context.Context, rt Runtime, msg Message) bool
	Handler     func(ctx context.Context, rt Runtime, msg Message, cb Callback) (ActionResult, error)
}

// Matches reports whether name is the action name or one of its similes.
func (a Action) Matches(name string) bool {
	if a.Name == name {
		return true
	}
	for _, s := range a.Similes {
		if s == name {
			return true
		}
	}
	return false
}

// ProviderResult is context contributed by a provider.
type ProviderResult struct {
	Text   string         `json:"text"`
	Values map[string]any `json:"values,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Provider supplies context for a message.
type Provider struct {
	Name        string
	Description string
	Get         func(ctx context.Context, rt Runtime, msg Message) (ProviderResult, error)
}

// Service is a long-running component started with the host.
type Service struct {
	Type                  string
	CapabilityDescription string
	Start                 func(ctx context.Context, rt Runtime) error
	Stop                  func(ctx context.Context) error
}

// ModelType names a class of text generation model.
type ModelType string

const (
	ModelTextSmall ModelType = "TEXT_SMALL"
	ModelTextLarge ModelType = "TEXT_LARGE"
)

// ModelParams carries the inputs for a model invocation.
type ModelParams struct {
	Prompt           string   `json:"prompt"`
	StopSequences    []string `json:"stopSequences,omitempty"`
	MaxTokens        int      `json:"maxTokens,omitempty"`
	Temperature      float64  `json:"temperature,omitempty"`
	FrequencyPenalty float64  `json:"frequencyPenalty,omitempty"`
	PresencePenalty  float64  `json:"presencePenalty,omitempty"`
}

// ModelHandler produces text for a model invocation.
type ModelHandler func(ctx context.Context, rt Runtime, params ModelParams) (string, error)

// Event names a host event plugins may subscribe to.
type Event string

const (
	EventMessageReceived      Event = "MESSAGE_RECEIVED"
	EventVoiceMessageReceived Event = "VOICE_MESSAGE_RECEIVED"
	EventWorldConnected       Event = "WORLD_CONNECTED"
	EventWorldJoined          Event = "WORLD_JOINED"
)

// EventHandler handles an emitted event. Payload keys depend on the event.
type EventHandler func(ctx context.Context, rt Runtime, payload map[string]any) error
