// Package agents is the host's agent store and the HTTP API operating on it.
package agents

import (
	"context"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the host API operations on stored agents.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[host.Agent], error)
	Find(ctx context.Context, id uuid.UUID) (*host.Agent, error)
	// Start verifies the agent's messaging channel and marks it active.
	Start(ctx context.Context, id uuid.UUID) (*host.Agent, error)
	Stop(ctx context.Context, id uuid.UUID) (*host.Agent, error)
}
