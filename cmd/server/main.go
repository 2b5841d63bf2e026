// Package main implements the entry point for the task API server, which
// stores tasks, tracks their status and publishes task events.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run database migrations and exit: up, down, status, version, reset",
	)
	flag.Parse()

	cfg, log, err := initializeApp()
	if err != nil {
		// The logger may not exist yet.
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(context.Background(), cfg, log, *migrateCmd); err != nil {
			log.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	os.Exit(app.Run(context.Background()))
}

// initializeApp loads configuration and sets up the default logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"redis_enabled", cfg.Redis.Enabled(),
		"websocket_enabled", cfg.Events.WebSocketEnabled)

	return cfg, l, nil
}
