package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each collection under its own string key. SET replaces
// the value in one command.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "teamly"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(collection string) string {
	return b.prefix + ":" + collection
}

// Load fetches the collection value.
func (b *RedisBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: collection %s is missing", ErrStorageUnavailable, collection)
		}
		return nil, fmt.Errorf("%w: load %s: %v", ErrStorageUnavailable, collection, err)
	}
	return data, nil
}

// Replace overwrites the collection value.
func (b *RedisBackend) Replace(ctx context.Context, collection string, data []byte) error {
	if err := b.client.Set(ctx, b.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrStorageUnavailable, collection, err)
	}
	return nil
}

// Ensure sets an empty array for each key that does not exist yet.
func (b *RedisBackend) Ensure(ctx context.Context, collections []string) error {
	for _, name := range collections {
		if err := b.client.SetNX(ctx, b.key(name), "[]", 0).Err(); err != nil {
			return fmt.Errorf("%w: seed %s: %v", ErrStorageUnavailable, name, err)
		}
	}
	return nil
}
