package agents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/query"
	"github.com/JaimeStill/agent-starter/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("username", "Username").
	Project("system", "System").
	Project("bio", "Bio").
	Project("topics", "Topics").
	Project("plugins", "Plugins").
	Project("settings", "Settings").
	Project("enabled", "Enabled").
	Project("status", "Status").
	Project("source", "Source").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

const returning = `RETURNING id, name, username, system, bio, topics, plugins, settings, enabled, status, source, created_at, updated_at`

func scanAgent(s repository.Scanner) (host.Agent, error) {
	var (
		a                               host.Agent
		bio, topics, plugins, settings []byte
		status                          string
	)

	err := s.Scan(
		&a.ID, &a.Name, &a.Username, &a.System,
		&bio, &topics, &plugins, &settings,
		&a.Enabled, &status, &a.Source, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	a.Status = host.Status(status)

	for _, col := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"bio", bio, &a.Bio},
		{"topics", topics, &a.Topics},
		{"plugins", plugins, &a.Plugins},
		{"settings", settings, &a.Settings},
	} {
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return a, fmt.Errorf("decode %s: %w", col.name, err)
		}
	}
	return a, nil
}

// args returns the insert parameters in column order, JSON columns encoded as text.
func args(a host.Agent) ([]any, error) {
	encoded := make([]string, 4)
	for i, v := range []any{nonNil(a.Bio), nonNil(a.Topics), nonNil(a.Plugins), a.Settings} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		encoded[i] = string(b)
	}

	return []any{
		a.ID, a.Name, a.Username, a.System,
		encoded[0], encoded[1], encoded[2], encoded[3],
		a.Enabled, string(a.Status), a.Source,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Name   *string
	Status *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Name", f.Name)
	if f.Status != nil {
		b.WhereEquals("Status", *f.Status)
	}
	return b
}
