package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
	"github.com/phrazzld/task-api/internal/store"
)

// openPostgres opens a pgx-backed connection pool and verifies it with a
// ping.
func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// openTaskStore opens the store selected by cfg.Driver. The returned close
// function releases the underlying connection.
func openTaskStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (store.TaskStore, func() error, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connection established", "driver", cfg.Driver)
		return postgres.NewPostgresTaskStore(db, logger), db.Close, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		logger.Info("database connection established", "driver", cfg.Driver)
		return sqlite.NewTaskStore(db, logger), func() error { return sqlite.Close(db) }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
