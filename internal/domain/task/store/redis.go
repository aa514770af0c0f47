package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wavecast-server-go/internal/domain/task"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis constructs a redis-backed outcome store.
func NewRedis(cfg Config) (task.OutcomeStore, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "task:outcome:"
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}, nil
}

func (s *redisStore) key(handle string) string {
	return s.prefix + handle
}

func (s *redisStore) Put(ctx context.Context, handle string, outcome task.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(handle), data, s.ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, handle string) (task.Outcome, bool, error) {
	data, err := s.client.Get(ctx, s.key(handle)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return task.Outcome{}, false, nil
		}
		return task.Outcome{}, false, err
	}
	var outcome task.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return task.Outcome{}, false, err
	}
	return outcome, true, nil
}

func (s *redisStore) Close(context.Context) error {
	return s.client.Close()
}
