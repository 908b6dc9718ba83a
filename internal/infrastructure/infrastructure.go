// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (lifecycle, logging, database) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/agent-starter/internal/config"
	"github.com/JaimeStill/agent-starter/internal/migrations"
	"github.com/JaimeStill/agent-starter/pkg/database"
	"github.com/JaimeStill/agent-starter/pkg/lifecycle"
	"github.com/JaimeStill/agent-starter/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System

	migrateURL string
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}
	if cfg.Database.AutoMigrate {
		infra.migrateURL = cfg.Database.URL()
	}
	return infra, nil
}

// Start connects the database, applying pending migrations first when
// auto_migrate is enabled.
func (i *Infrastructure) Start() error {
	if i.migrateURL != "" {
		if err := migrate(i.migrateURL, i.Logger); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}

func migrate(url string, logger *slog.Logger) error {
	m, err := migrations.New(url)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return err
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}
