package host

import "github.com/JaimeStill/agent-starter/pkg/openapi"

type spec struct {
	Describe     *openapi.Operation
	InvokeAction *openapi.Operation
	UseModel     *openapi.Operation
	ComposeState *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the runtime endpoints.
var Spec = spec{
	Describe: &openapi.Operation{
		Summary:     "Describe runtime",
		Description: "Lists registered plugins, actions, providers, services, models, and routes",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Runtime description", "RuntimeDescription"),
		},
	},
	InvokeAction: &openapi.Operation{
		Summary:     "Invoke action",
		Description: "Runs an action, matched by name or simile, against a message",
		Parameters: []*openapi.Parameter{
			{Name: "name", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}},
		},
		RequestBody: openapi.RequestBodyJSON("Message", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Action outcome", "Invocation"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	UseModel: &openapi.Operation{
		Summary:     "Use model",
		Description: "Generates text with the highest priority handler for the model type",
		Parameters: []*openapi.Parameter{
			{Name: "type", In: "path", Required: true, Schema: &openapi.Schema{Type: "string", Enum: []string{"TEXT_SMALL", "TEXT_LARGE"}}},
		},
		RequestBody: openapi.RequestBodyJSON("ModelParams", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "Generated text"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	ComposeState: &openapi.Operation{
		Summary:     "Compose state",
		Description: "Collects provider context for a message",
		RequestBody: openapi.RequestBodyJSON("Message", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "Provider results keyed by provider name"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	strList := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}
	return map[string]*openapi.Schema{
		"RuntimeDescription": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"agentId":   {Type: "string", Format: "uuid"},
				"name":      {Type: "string"},
				"plugins":   strList,
				"actions":   strList,
				"providers": strList,
				"services":  strList,
				"models":    strList,
				"routes": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"name":   {Type: "string"},
							"path":   {Type: "string"},
							"type":   {Type: "string"},
							"public": {Type: "boolean"},
						},
					},
				},
			},
		},
		"Message": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"id":     {Type: "string", Format: "uuid"},
				"text":   {Type: "string", Example: "Can you say hello?"},
				"source": {Type: "string"},
			},
		},
		"ModelParams": {
			Type:     "object",
			Required: []string{"prompt"},
			Properties: map[string]*openapi.Schema{
				"prompt":        {Type: "string"},
				"stopSequences": strList,
				"maxTokens":     {Type: "integer"},
				"temperature":   {Type: "number"},
			},
		},
		"Invocation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"action": {Type: "string"},
				"result": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"text":    {Type: "string"},
						"success": {Type: "boolean"},
						"values":  {Type: "object"},
						"data":    {Type: "object"},
						"error":   {Type: "string"},
					},
				},
				"replies": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"text":    {Type: "string"},
							"actions": strList,
							"source":  {Type: "string"},
						},
					},
				},
			},
		},
	}
}
