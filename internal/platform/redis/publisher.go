// Package redis publishes domain events to a Redis channel so that other
// processes can follow task changes.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	goredis "github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// NewClient creates a Redis client from cfg and verifies it with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// Publisher publishes every event it receives as a JSON envelope.
type Publisher struct {
	client  goredis.UniversalClient
	channel string
	logger  *slog.Logger
}

// NewPublisher creates a Publisher that writes to channel.
func NewPublisher(client goredis.UniversalClient, channel string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{
		client:  client,
		channel: channel,
		logger:  log.With("component", "redis_publisher"),
	}
}

// Ensure Publisher can be subscribed to the dispatcher
var _ events.EventHandler = (*Publisher)(nil)

// HandleEvent implements events.EventHandler.
func (p *Publisher) HandleEvent(ctx context.Context, event domain.DomainEvent) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	payload, err := Encode(event)
	if err != nil {
		return err
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		log.Error("failed to publish event",
			"error", err,
			"channel", p.channel,
			"event_id", event.EventID(),
			"event_type", event.Kind())
		return fmt.Errorf("publish %s to %s: %w", event.Kind(), p.channel, err)
	}

	log.Debug("event published",
		"channel", p.channel,
		"event_type", event.Kind(),
		"receivers", receivers)
	return nil
}

// Encode serializes event as the JSON envelope published on the channel.
func Encode(event domain.DomainEvent) ([]byte, error) {
	env, err := events.NewEnvelope(event)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", event.Kind(), err)
	}
	return data, nil
}
