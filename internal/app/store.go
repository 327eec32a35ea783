package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/newrelic/go-agent/v3/newrelic"

	"carpool/internal/config"
	"carpool/internal/repository"
	fsrepo "carpool/internal/repository/firestore"
	"carpool/internal/repository/memory"
	"carpool/internal/repository/postgres"
)

// NewStore opens the record store selected by cfg.Store. Closing the returned
// store releases the underlying connection.
func NewStore(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return nil, err
		}
		if cfg.Database.RunMigrations {
			if err := postgres.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
			logger.Info("database schema applied")
		}
		logger.Info("connected to PostgreSQL", "host", cfg.Database.Host, "db", cfg.Database.DBName)
		return postgres.NewStore(db), nil

	case config.StoreFirestore:
		client, err := NewFirestoreClient(ctx, cfg.Firestore)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to Firestore", "project", cfg.Firestore.ProjectID)
		return fsrepo.NewStore(client), nil

	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
