// Package backend opens the document store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/firestore"
	"portfolio-backend/internal/repository/memory"
	"portfolio-backend/internal/repository/postgres"
	"portfolio-backend/internal/repository/sqlite"
	"portfolio-backend/pkg/database"
)

// Backend is an opened store plus its teardown.
type Backend struct {
	Name  string
	Store domain.WritableStore
	close func() error
}

func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to cfg.StoreBackend. Postgres and SQLite create their table
// on first use.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		return &Backend{Name: config.BackendMemory, Store: memory.New()}, nil

	case config.BackendFirestore:
		s, err := firestore.Open(ctx, firestore.Config{
			ProjectID:       cfg.FirestoreProjectID,
			DatabaseID:      cfg.FirestoreDatabaseID,
			CredentialsFile: cfg.FirestoreCredsFile,
		})
		if err != nil {
			return nil, err
		}
		return &Backend{Name: cfg.StoreBackend, Store: s, close: s.Close}, nil

	case config.BackendPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		s := postgres.NewDocumentStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres: ensure schema: %w", err)
		}
		return &Backend{Name: cfg.StoreBackend, Store: s, close: func() error {
			pool.Close()
			return nil
		}}, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: cfg.StoreBackend, Store: s, close: s.Close}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
