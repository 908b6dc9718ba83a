package starter

import (
	"context"
	"net/http"
	"sort"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/handlers"
)

// HelloWorld handles GET /helloworld.
func (s *Starter) HelloWorld(w http.ResponseWriter, r *http.Request, rt host.Runtime) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": "Hello World!"})
}

func (s *Starter) helloWorldAction() host.Action {
	return host.Action{
		Name:        "HELLO_WORLD",
		Similes:     []string{"GREET", "SAY_HELLO"},
		Description: "Responds with a simple hello world message",
		Validate: func(context.Context, host.Runtime, host.Message) bool {
			return true
		},
		Handler: func(ctx context.Context, rt host.Runtime, msg host.Message, cb host.Callback) (host.ActionResult, error) {
			s.logger.Info("handling HELLO_WORLD action", "message_id", msg.ID)

			err := cb(ctx, host.Content{
				Text:    "hello world!",
				Actions: []string{"HELLO_WORLD"},
				Source:  msg.Source,
			})
			if err != nil {
				s.logger.Error("hello world callback failed", "error", err)
				return host.ActionResult{
					Text:    "Failed to send hello world greeting",
					Values:  map[string]any{"success": false, "error": "GREETING_FAILED"},
					Data:    map[string]any{"actionName": "HELLO_WORLD", "error": err.Error()},
					Success: false,
					Error:   err.Error(),
				}, nil
			}

			return host.ActionResult{
				Text:   "Sent hello world greeting",
				Values: map[string]any{"success": true, "greeted": true},
				Data: map[string]any{
					"actionName": "HELLO_WORLD",
					"messageId":  msg.ID.String(),
					"timestamp":  s.now().UnixMilli(),
				},
				Success: true,
			}, nil
		},
	}
}

func (s *Starter) helloWorldProvider() host.Provider {
	return host.Provider{
		Name:        "HELLO_WORLD_PROVIDER",
		Description: "A simple example provider",
		Get: func(context.Context, host.Runtime, host.Message) (host.ProviderResult, error) {
			return host.ProviderResult{
				Text:   "I am a provider",
				Values: map[string]any{},
				Data:   map[string]any{},
			}, nil
		},
	}
}

func (s *Starter) service() host.Service {
	return host.Service{
		Type:                  Name,
		CapabilityDescription: "This is a starter service which is attached to the agent through the starter plugin.",
		Start: func(ctx context.Context, rt host.Runtime) error {
			s.logger.Info("starter service started", "agent_id", rt.AgentID())
			return nil
		},
		Stop: func(ctx context.Context) error {
			s.logger.Info("starter service stopped")
			return nil
		},
	}
}

// The starter models return fixed text so the agent answers without a
// real model provider registered.
func (s *Starter) textSmall(ctx context.Context, rt host.Runtime, params host.ModelParams) (string, error) {
	return "This is the starter plugin's small model placeholder response.", nil
}

func (s *Starter) textLarge(ctx context.Context, rt host.Runtime, params host.ModelParams) (string, error) {
	return "This is the starter plugin's large model placeholder response. Register a model provider plugin for real completions.", nil
}

func (s *Starter) logEvent(event host.Event) host.EventHandler {
	return func(ctx context.Context, rt host.Runtime, payload map[string]any) error {
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s.logger.Info("event received", "event", event, "keys", keys)
		return nil
	}
}
