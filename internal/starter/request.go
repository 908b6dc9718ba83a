package starter

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Violation is a single request or configuration validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is every failure found in one validation pass.
type Violations []Violation

// Error joins the messages with ", ".
func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, violation := range v {
		msgs[i] = violation.Message
	}
	return strings.Join(msgs, ", ")
}

// CreateAgentRequest is the body of the agent bootstrap route.
type CreateAgentRequest struct {
	Name          string   `json:"name"`
	Prompt        string   `json:"prompt"`
	TelegramToken string   `json:"telegramToken"`
	AutoStart     *bool    `json:"autoStart,omitempty"`
	Username      string   `json:"username,omitempty"`
	Bio           []string `json:"bio,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	Plugins       []string `json:"plugins,omitempty"`
}

// ShouldAutoStart defaults to true when autoStart is omitted.
func (r CreateAgentRequest) ShouldAutoStart() bool {
	return r.AutoStart == nil || *r.AutoStart
}

// requestFields is the order violations are reported in.
var requestFields = []string{
	"name", "prompt", "telegramToken", "autoStart",
	"username", "bio", "topics", "avatar", "plugins",
}

// DecodeCreateAgent parses and validates body. Every field is checked so
// the caller receives all violations at once; a JSON null is treated as
// an omitted field.
func DecodeCreateAgent(body []byte) (CreateAgentRequest, Violations) {
	var req CreateAgentRequest

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return req, Violations{{Field: "body", Message: "Request body must be a JSON object"}}
	}

	raw := func(field string) json.RawMessage {
		v := fields[field]
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil
		}
		return v
	}

	var autoStart bool
	errs := validation.Errors{
		"name":          requiredString(raw("name"), &req.Name, "name must be a string", "Agent name is required"),
		"prompt":        requiredString(raw("prompt"), &req.Prompt, "prompt must be a string", "System prompt is required"),
		"telegramToken": requiredString(raw("telegramToken"), &req.TelegramToken, "telegramToken must be a string", "Telegram bot token is required"),
		"autoStart":     optional(raw("autoStart"), into(&autoStart, "autoStart must be a boolean")),
		"username": optional(raw("username"),
			into(&req.Username, "username must be a string"),
			decoded(&req.Username,
				validation.Required.Error("Username must be at least 2 characters"),
				validation.RuneLength(2, 0).Error("Username must be at least 2 characters"),
				validation.RuneLength(0, 32).Error("Username must be at most 32 characters"),
			),
		),
		"bio": optional(raw("bio"), stringOrList(&req.Bio,
			"Bio must be a string or a list of strings", "Bio entries must not be empty")),
		"topics": optional(raw("topics"), stringList(&req.Topics,
			"Topics must be a list of strings", "Topics must not contain empty entries")),
		"avatar": optional(raw("avatar"),
			into(&req.Avatar, "avatar must be a string"),
			decoded(&req.Avatar, is.RequestURL.Error("Avatar must be a valid URL")),
		),
		"plugins": optional(raw("plugins"), stringList(&req.Plugins,
			"Plugins must be a list of strings", "Plugins must not contain empty entries")),
	}

	if raw("autoStart") != nil && errs["autoStart"] == nil {
		req.AutoStart = &autoStart
	}

	var violations Violations
	for _, field := range requestFields {
		if err := errs[field]; err != nil {
			violations = append(violations, Violation{Field: field, Message: err.Error()})
		}
	}
	return req, violations
}

func requiredString(raw json.RawMessage, dst *string, typeMsg, msg string) error {
	return validation.Validate(raw,
		validation.Required.Error(msg),
		into(dst, typeMsg),
		decoded(dst, validation.Required.Error(msg)),
	)
}

// optional applies rules only when the field carries a value.
func optional(raw json.RawMessage, rules ...validation.Rule) error {
	return validation.Validate(raw, validation.When(raw != nil, rules...))
}

// into unmarshals the raw field into dst.
func into(dst any, msg string) validation.Rule {
	return validation.By(func(value any) error {
		if err := json.Unmarshal(value.(json.RawMessage), dst); err != nil {
			return validation.NewError("validation_type", msg)
		}
		return nil
	})
}

// decoded validates the value into has written to ptr.
func decoded[T any](ptr *T, rules ...validation.Rule) validation.Rule {
	return validation.By(func(any) error {
		return validation.Validate(*ptr, rules...)
	})
}

func stringList(dst *[]string, typeMsg, emptyMsg string) validation.Rule {
	return validation.By(func(value any) error {
		var list []string
		if err := json.Unmarshal(value.(json.RawMessage), &list); err != nil {
			return validation.NewError("validation_type", typeMsg)
		}
		if err := validation.Validate(list, validation.Each(validation.Required)); err != nil {
			return validation.NewError("validation_empty_entry", emptyMsg)
		}
		*dst = list
		return nil
	})
}

// stringOrList accepts a single string or a list. An empty string counts
// as omitted.
func stringOrList(dst *[]string, typeMsg, emptyMsg string) validation.Rule {
	list := stringList(dst, typeMsg, emptyMsg)
	return validation.By(func(value any) error {
		var s string
		if err := json.Unmarshal(value.(json.RawMessage), &s); err != nil {
			return list.Validate(value)
		}
		if s != "" {
			*dst = []string{s}
		}
		return nil
	})
}
