package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements SecretStore on a Redis client, for deployments
// that already run Redis and would rather not stand up a second storage
// engine alongside it. Unlike BoltStore it keeps no local mirror — every
// operation is a round trip — so it trades the embedded backend's latency
// for horizontal scalability across multiple SchemeGuardian processes.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("store: redis client must not be nil")
	}
	return &RedisStore{client: client}, nil
}

// RedisStore is a SecretStore backed by Redis string keys.
type RedisStore struct {
	client *redis.Client
}

func (r *RedisStore) Get(ctx context.Context, key []byte) ([]byte, Result, error) {
	v, err := r.client.Get(ctx, string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ResultKeyNotFound, nil
	}
	if err != nil {
		return nil, ResultUnknown, fmt.Errorf("store: redis get: %w", err)
	}
	return v, ResultKeyFound, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value []byte) (Result, error) {
	existed, err := r.client.Exists(ctx, string(key)).Result()
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: redis exists: %w", err)
	}
	if err := r.client.Set(ctx, string(key), value, 0).Err(); err != nil {
		return ResultUnknown, fmt.Errorf("store: redis set: %w", err)
	}
	if existed > 0 {
		return ResultModified, nil
	}
	return ResultInserted, nil
}

func (r *RedisStore) Remove(ctx context.Context, key []byte) (Result, error) {
	n, err := r.client.Del(ctx, string(key)).Result()
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: redis del: %w", err)
	}
	if n == 0 {
		return ResultKeyNotFound, nil
	}
	return ResultDeleted, nil
}

func (r *RedisStore) Check(ctx context.Context, key []byte) (bool, error) {
	n, err := r.client.Exists(ctx, string(key)).Result()
	if err != nil {
		return false, fmt.Errorf("store: redis exists: %w", err)
	}
	return n > 0, nil
}

func (r *RedisStore) List(ctx context.Context) ([][]byte, error) {
	var out [][]byte
	iter := r.client.Scan(ctx, 0, "", 0).Iterator()
	for iter.Next(ctx) {
		out = append(out, []byte(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("store: redis scan: %w", err)
	}
	return out, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	keys, err := r.List(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	strKeys := make([]string, len(keys))
	for i, k := range keys {
		strKeys[i] = string(k)
	}
	if err := r.client.Del(ctx, strKeys...).Err(); err != nil {
		return fmt.Errorf("store: redis clear: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error { return r.client.Close() }
