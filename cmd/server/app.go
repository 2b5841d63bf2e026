package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/metrics"
	"github.com/phrazzld/task-api/internal/platform/redis"
	"github.com/phrazzld/task-api/internal/realtime"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of a running server so they can
// be released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	closeStore func() error
	redis      *goredis.Client

	registry *prometheus.Registry
	metrics  *metrics.Metrics
	hub      *realtime.Hub
	handlers *service.TaskHandlers
}

// newApplication opens the store and builds the event pipeline and task
// handlers. Every event subscriber is registered before the first request
// can be served.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	taskStore, closeStore, err := openTaskStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	app.closeStore = closeStore

	table, err := app.eventTable(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	repo, err := service.NewTaskRepositoryAdapter(
		taskStore,
		events.NewDispatcher(table, logger),
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task repository: %w", err)
	}

	app.handlers, err = service.NewTaskHandlers(repo, nil, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task handlers: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// eventTable builds the subscriber table: event logging and metrics always,
// Redis publishing and the websocket hub when configured.
func (app *application) eventTable(ctx context.Context) (events.Table, error) {
	table := events.LogHandlers(app.logger)
	table.Subscribe(app.metrics)

	if app.config.Redis.Enabled() {
		client, err := redis.NewClient(ctx, app.config.Redis)
		if err != nil {
			return events.Table{}, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redis = client
		table.Subscribe(redis.NewPublisher(client, app.config.Redis.Channel, app.logger))
		app.logger.Info("publishing task events to redis", "channel", app.config.Redis.Channel)
	}

	if app.config.Events.WebSocketEnabled {
		app.hub = realtime.NewHub(app.config.Server.AllowedOrigins, app.logger)
		table.Subscribe(app.hub)
	}

	return table, nil
}

// cleanup releases the store and the Redis client. It is safe to call on a
// partially built application.
func (app *application) cleanup() error {
	var errs []error

	if app.hub != nil {
		app.hub.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if app.closeStore != nil {
		if err := app.closeStore(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		app.logger.Error("error releasing resources", "error", err)
		return err
	}
	return nil
}
