package agents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/agent-starter/internal/host"
)

var (
	ErrDisabled             = errors.New("agent is disabled")
	ErrChannelNotConfigured = errors.New("agent has no messaging channel token")
	ErrChannel              = errors.New("messaging channel verification failed")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, host.ErrAgentNotFound):
		return http.StatusNotFound
	case errors.Is(err, host.ErrAgentExists), errors.Is(err, ErrDisabled):
		return http.StatusConflict
	case errors.Is(err, ErrChannelNotConfigured):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrChannel):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, host.ErrAgentNotFound):
		return "AGENT_NOT_FOUND"
	case errors.Is(err, host.ErrAgentExists):
		return "AGENT_EXISTS"
	case errors.Is(err, ErrDisabled):
		return "AGENT_DISABLED"
	case errors.Is(err, ErrChannelNotConfigured):
		return "CHANNEL_NOT_CONFIGURED"
	case errors.Is(err, ErrChannel):
		return "CHANNEL_UNAVAILABLE"
	default:
		return "AGENT_ERROR"
	}
}
