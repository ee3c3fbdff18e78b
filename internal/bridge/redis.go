package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisTransport carries bridge events over Redis pub/sub for deployments
// where the wallet host and the UI run as separate processes.
type RedisTransport struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisTransport(url string, logger *slog.Logger) (*RedisTransport, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisTransport{
		client: client,
		logger: logger.With("component", "redis_transport"),
	}, nil
}

func (t *RedisTransport) Publish(ctx context.Context, event string, payload []byte) error {
	if err := t.client.Publish(ctx, event, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

func (t *RedisTransport) Subscribe(event string, fn func(payload []byte)) (func(), error) {
	sub := t.client.Subscribe(context.Background(), event)
	if _, err := sub.Receive(context.Background()); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", event, err)
	}

	go func() {
		for msg := range sub.Channel() {
			fn([]byte(msg.Payload))
		}
	}()

	return func() {
		if err := sub.Close(); err != nil {
			t.logger.Warn("close subscription failed", "event", event, "error", err)
		}
	}, nil
}

func (t *RedisTransport) Close() error {
	return t.client.Close()
}
