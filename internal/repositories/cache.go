package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss reports that a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository is the cache the admin repository reads through. A
// cache failure is never fatal; callers fall back to the database.
type CacheRepository interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, expiration time.Duration) error
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int, expiration time.Duration) error
	Close() error
}
