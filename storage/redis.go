package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sky-flux/deck"
)

// DefaultRedisKey is the key the collection is stored under when none is
// configured.
const DefaultRedisKey = "deck:exercises"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore keeps the collection as one JSON string under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// OpenRedisStore connects to Redis and checks the connection with PING.
func OpenRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisStore(client, cfg.Key), nil
}

// NewRedisStore wraps an existing client. An empty key means DefaultRedisKey.
// The store takes ownership of client and closes it in Close.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) ([]deck.Record, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []deck.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get %s: %w", r.key, err)
	}
	return decodeJSON(data)
}

func (r *RedisStore) Save(ctx context.Context, records []deck.Record) error {
	data, err := encodeJSON(records)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
