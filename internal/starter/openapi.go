package starter

import "github.com/JaimeStill/agent-starter/pkg/openapi"

type spec struct {
	HelloWorld  *openapi.Operation
	AgentInfo   *openapi.Operation
	A2ACard     *openapi.Operation
	CreateAgent *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the plugin routes.
var Spec = spec{
	HelloWorld: &openapi.Operation{
		Summary: "Hello world",
		Responses: map[int]*openapi.Response{
			200: {Description: `{"message":"Hello World!"}`},
		},
	},
	AgentInfo: &openapi.Operation{
		Summary:     "Agent info",
		Description: "Snapshot of the running agent, its registered capabilities, and the stored agent roster",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Runtime snapshot", "AgentInfo"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	A2ACard: &openapi.Operation{
		Summary:     "Agent-to-agent card",
		Description: "Public descriptor of a stored agent for cross-agent discovery. Defaults to the running agent.",
		Parameters: []*openapi.Parameter{
			{Name: "agentId", In: "query", Description: "Agent UUID", Schema: &openapi.Schema{Type: "string", Format: "uuid"}},
			{Name: "id", In: "query", Description: "Alias of agentId", Schema: &openapi.Schema{Type: "string", Format: "uuid"}},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent card", "AgentCard"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	CreateAgent: &openapi.Operation{
		Summary:     "Bootstrap Telegram agent",
		Description: "Creates an agent connected to Telegram, optionally registers its identity, and optionally starts it",
		RequestBody: openapi.RequestBodyJSON("CreateAgentRequest", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Agent created", "CreateAgentResult"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			500: openapi.ResponseRef("Internal"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	str := func() *openapi.Schema { return &openapi.Schema{Type: "string"} }
	strList := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string", MinLength: openapi.Length(1)}}

	return map[string]*openapi.Schema{
		"CreateAgentRequest": {
			Type:     "object",
			Required: []string{"name", "prompt", "telegramToken"},
			Properties: map[string]*openapi.Schema{
				"name":          {Type: "string", MinLength: openapi.Length(1), Example: "Support Bot"},
				"prompt":        {Type: "string", MinLength: openapi.Length(1), Description: "System prompt"},
				"telegramToken": {Type: "string", MinLength: openapi.Length(1)},
				"autoStart":     {Type: "boolean", Description: "Defaults to true"},
				"username":      {Type: "string", MinLength: openapi.Length(2), MaxLength: openapi.Length(32)},
				"bio": {OneOf: []*openapi.Schema{
					{Type: "string"},
					strList,
				}},
				"topics":  strList,
				"avatar":  {Type: "string", Format: "uri"},
				"plugins": strList,
			},
		},
		"CreateAgentResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"agentId":            {Type: "string", Format: "uuid"},
				"name":               str(),
				"plugins":            strList,
				"telegramConfigured": {Type: "boolean"},
				"a2aEndpoint":        {Type: "string", Format: "uri"},
				"registration": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"attempted": {Type: "boolean"},
						"success":   {Type: "boolean"},
						"agentId":   str(),
						"agentUri":  str(),
						"error":     str(),
					},
				},
				"autoStart": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"enabled": {Type: "boolean"},
						"status":  {Type: "string", Enum: []string{StartSkipped, StartStarted, StartFailed}},
						"error":   str(),
					},
				},
			},
		},
		"AgentCard": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"agentId":     {Type: "string", Format: "uuid"},
				"name":        str(),
				"username":    str(),
				"version":     {Type: "string", Example: DefaultA2AVersion},
				"description": str(),
				"topics":      strList,
				"plugins":     strList,
				"avatar":      {Type: "string", Format: "uri"},
				"status":      str(),
				"createdAt":   {Type: "string", Format: "date-time"},
				"updatedAt":   {Type: "string", Format: "date-time"},
				"generatedAt": {Type: "string", Format: "date-time"},
			},
		},
		"AgentInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"agentId":   {Type: "string", Format: "uuid"},
				"name":      str(),
				"character": {Type: "object"},
				"plugins":   strList,
				"actions":   strList,
				"providers": strList,
				"services":  strList,
				"routes":    {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"registry": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"totalAgents": {Type: "integer"},
						"storedAgent": {Type: "object", Nullable: true},
					},
				},
				"timestamp": {Type: "string", Format: "date-time"},
			},
		},
	}
}
