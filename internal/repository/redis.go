package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"estudio/internal/config"
	"estudio/internal/domain"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "estudio:events:"

// NewRedisClient creates a Redis client from the configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

// RedisEventStream fans events out through Redis pub/sub so every running
// instance sees them.
type RedisEventStream struct {
	client *redis.Client
}

func NewRedisEventStream(client *redis.Client) *RedisEventStream {
	return &RedisEventStream{client: client}
}

func (s *RedisEventStream) Publish(ctx context.Context, topic string, payload []byte) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := s.client.Publish(ctx, channelPrefix+topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}
	return nil
}

func (s *RedisEventStream) Subscribe(ctx context.Context, topic string) (<-chan domain.StreamEvent, func(), error) {
	if s.client == nil {
		return nil, nil, fmt.Errorf("redis client is nil")
	}

	pubsub := s.client.Subscribe(ctx, channelPrefix+topic)

	// Force the subscription onto the wire so a broken connection surfaces
	// here instead of as a silent dead channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to redis: %w", err)
	}

	out := make(chan domain.StreamEvent, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				event := domain.StreamEvent{
					Topic:     topic,
					Payload:   []byte(msg.Payload),
					CreatedAt: time.Now(),
				}
				select {
				case out <- event:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}
	return out, cancel, nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close shuts the Redis connection down.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
