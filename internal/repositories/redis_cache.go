package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheRepository backs CacheRepository with redis.
type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(client *redis.Client) CacheRepository {
	return &RedisCacheRepository{
		client: client,
	}
}

func (r *RedisCacheRepository) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisCacheRepository) SetString(ctx context.Context, key, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCacheRepository) GetInt(ctx context.Context, key string) (int, error) {
	val, err := r.GetString(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (r *RedisCacheRepository) SetInt(ctx context.Context, key string, value int, expiration time.Duration) error {
	return r.client.Set(ctx, key, strconv.Itoa(value), expiration).Err()
}

func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}
