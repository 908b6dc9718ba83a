package openapi

import "net/http"

// Components holds reusable schema and response definitions.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// NewComponents creates Components pre-populated with the shared error
// responses referenced by ResponseRef.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Failure": {
				Type: "object",
				Properties: map[string]*Schema{
					"success": {Type: "boolean", Example: false},
					"error": {
						Type: "object",
						Properties: map[string]*Schema{
							"code":    {Type: "string"},
							"message": {Type: "string"},
						},
					},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": failure(http.StatusBadRequest),
			"NotFound":   failure(http.StatusNotFound),
			"Conflict":   failure(http.StatusConflict),
			"Internal":   failure(http.StatusInternalServerError),
		},
	}
}

// AddSchemas merges schemas into the component set.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

func failure(status int) *Response {
	return ResponseJSON(http.StatusText(status), "Failure")
}
