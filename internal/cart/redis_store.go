package cart

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisStorage persists snapshots in Redis, scoped by session ID so each
// visitor gets an independent cart.
type RedisStorage struct {
	client    *redis.Client
	sessionID string
}

// NewRedisStorage pings the server before returning.
func NewRedisStorage(ctx context.Context, addr, sessionID string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStorage{client: client, sessionID: sessionID}, nil
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	return data, err
}

func (r *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.key(key), data, 0).Err()
}

// Close releases the underlying connection.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}

func (r *RedisStorage) key(key string) string {
	return key + ":" + r.sessionID
}
