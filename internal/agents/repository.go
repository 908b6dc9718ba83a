package agents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/agent-starter/internal/host"
	"github.com/JaimeStill/agent-starter/pkg/pagination"
	"github.com/JaimeStill/agent-starter/pkg/query"
	"github.com/JaimeStill/agent-starter/pkg/repository"
	"github.com/google/uuid"
)

// Repository stores agents in PostgreSQL. It serves both the host runtime
// (host.Store) and the host API (System).
type Repository struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	channel    Channel
}

var (
	_ System     = (*Repository)(nil)
	_ host.Store = (*Repository)(nil)
)

func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, channel Channel) *Repository {
	return &Repository{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
		channel:    channel,
	}
}

func (r *Repository) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[host.Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Username")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	agents, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(agents, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, host.ErrAgentNotFound, host.ErrAgentExists)
	}
	return &a, nil
}

// All returns every stored agent ordered by name.
func (r *Repository) All(ctx context.Context) ([]host.Agent, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		projection.Columns(), projection.Table(), projection.Column("Name"))

	agents, err := repository.QueryMany(ctx, r.db, q, nil, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	return agents, nil
}

// Create inserts a new agent. A name that collides with an existing agent
// after trimming and lower-casing yields host.ErrAgentExists.
func (r *Repository) Create(ctx context.Context, agent host.Agent) (*host.Agent, error) {
	params, err := args(agent)
	if err != nil {
		return nil, fmt.Errorf("encode agent: %w", err)
	}

	q := `
		INSERT INTO agents (id, name, username, system, bio, topics, plugins, settings, enabled, status, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		` + returning

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (host.Agent, error) {
		return repository.QueryOne(ctx, tx, q, params, scanAgent)
	})
	if err != nil {
		return nil, repository.MapError(err, host.ErrAgentNotFound, host.ErrAgentExists)
	}

	r.logger.Info("agent stored", "id", a.ID, "name", a.Name)
	return &a, nil
}

const upsertQuery = `
	INSERT INTO agents (id, name, username, system, bio, topics, plugins, settings, enabled, status, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		username = EXCLUDED.username,
		system = EXCLUDED.system,
		bio = EXCLUDED.bio,
		topics = EXCLUDED.topics,
		plugins = EXCLUDED.plugins,
		settings = EXCLUDED.settings,
		source = EXCLUDED.source,
		updated_at = NOW()
	` + returning

// Upsert inserts agent or replaces the stored record with the same id using q.
// Status and creation time of an existing record are preserved.
func Upsert(ctx context.Context, q repository.Querier, agent host.Agent) (host.Agent, error) {
	params, err := args(agent)
	if err != nil {
		return host.Agent{}, fmt.Errorf("encode agent: %w", err)
	}

	a, err := repository.QueryOne(ctx, q, upsertQuery, params, scanAgent)
	if err != nil {
		return host.Agent{}, repository.MapError(err, host.ErrAgentNotFound, host.ErrAgentExists)
	}
	return a, nil
}

// Save upserts agent in its own transaction.
func (r *Repository) Save(ctx context.Context, agent host.Agent) (*host.Agent, error) {
	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (host.Agent, error) {
		return Upsert(ctx, tx, agent)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("agent saved", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *Repository) Start(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrDisabled, a.Name)
	}

	token := a.Settings.Secret(host.SecretTelegramBotToken)
	if token == "" {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotConfigured, a.Name)
	}

	bot, err := r.channel.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannel, err)
	}

	updated, err := r.setStatus(ctx, id, host.StatusActive)
	if err != nil {
		return nil, err
	}

	r.logger.Info("agent started", "id", id, "name", updated.Name, "bot", bot.Username)
	return updated, nil
}

func (r *Repository) Stop(ctx context.Context, id uuid.UUID) (*host.Agent, error) {
	updated, err := r.setStatus(ctx, id, host.StatusInactive)
	if err != nil {
		return nil, err
	}

	r.logger.Info("agent stopped", "id", id, "name", updated.Name)
	return updated, nil
}

func (r *Repository) setStatus(ctx context.Context, id uuid.UUID, status host.Status) (*host.Agent, error) {
	update := `
		UPDATE agents
		SET status = $1, updated_at = NOW()
		WHERE id = $2`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (host.Agent, error) {
		if err := repository.ExecExpectOne(ctx, tx, update, string(status), id); err != nil {
			return host.Agent{}, err
		}
		q, args := query.NewBuilder(projection).BuildSingle("ID", id)
		return repository.QueryOne(ctx, tx, q, args, scanAgent)
	})
	if err != nil {
		return nil, repository.MapError(err, host.ErrAgentNotFound, host.ErrAgentExists)
	}
	return &a, nil
}
