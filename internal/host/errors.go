package host

import (
	"errors"
	"net/http"
)

var (
	ErrAgentNotFound    = errors.New("agent not found")
	ErrAgentExists      = errors.New("agent already exists")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrPluginExists     = errors.New("plugin already registered")
	ErrActionNotFound   = errors.New("action not found")
	ErrActionRejected   = errors.New("action rejected message")
	ErrModelNotFound    = errors.New("no handler for model type")
	ErrInvalidMessage   = errors.New("invalid message")
)

// MapHTTPStatus maps host errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAgentNotFound),
		errors.Is(err, ErrActionNotFound),
		errors.Is(err, ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAgentExists), errors.Is(err, ErrPluginExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidMessage), errors.Is(err, ErrActionRejected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
