package agents

import "github.com/JaimeStill/agent-starter/pkg/openapi"

type spec struct {
	List  *openapi.Operation
	Find  *openapi.Operation
	Start *openapi.Operation
	Stop  *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all agent endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List agents",
		Description: "Returns a paginated list of agents with optional filtering and sorting",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches name and username)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("name", "string", "Filter by agent name (contains)", false),
			openapi.QueryParam("status", "string", "Filter by status (active, inactive)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of agents", "AgentPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get agent by ID",
		Description: "Retrieves a single stored agent with secrets masked",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Start: &openapi.Operation{
		Summary:     "Start agent",
		Description: "Verifies the agent's Telegram bot token and marks the agent active",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent started", "Agent"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			422: {Description: "Agent has no messaging channel token"},
			502: {Description: "Messaging channel rejected the token"},
		},
	},
	Stop: &openapi.Operation{
		Summary:     "Stop agent",
		Description: "Marks the agent inactive",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent stopped", "Agent"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	strList := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}
	return map[string]*openapi.Schema{
		"Agent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string", Format: "uuid"},
				"name":     {Type: "string"},
				"username": {Type: "string"},
				"system":   {Type: "string"},
				"bio":      strList,
				"topics":   strList,
				"plugins":  strList,
				"settings": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"avatar":  {Type: "string", Format: "uri"},
						"secrets": {Type: "object", Description: "Secret values are masked"},
					},
				},
				"enabled":   {Type: "boolean"},
				"status":    {Type: "string", Enum: []string{"active", "inactive"}},
				"source":    {Type: "string"},
				"createdAt": {Type: "string", Format: "date-time"},
				"updatedAt": {Type: "string", Format: "date-time"},
			},
		},
		"AgentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Agent")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
