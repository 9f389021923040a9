package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"
)

var ErrKeyNotFound = errors.New("key not found")

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Str("addr", addr).Msg("Redis connection established")
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := encode(value)
	if err != nil {
		return false, err
	}
	return c.client.SetNX(ctx, key, data, ttl).Result()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) GeoAdd(ctx context.Context, key string, longitude, latitude float64, member string) error {
	return c.client.GeoAdd(ctx, key, &redis.GeoLocation{
		Longitude: longitude,
		Latitude:  latitude,
		Name:      member,
	}).Err()
}

// GeoRadius returns members within radiusMeters, nearest first, with distances in meters.
func (c *RedisCache) GeoRadius(ctx context.Context, key string, longitude, latitude, radiusMeters float64) ([]redis.GeoLocation, error) {
	return c.client.GeoRadius(ctx, key, longitude, latitude, &redis.GeoRadiusQuery{
		Radius:   radiusMeters,
		Unit:     "m",
		WithDist: true,
		Sort:     "ASC",
	}).Result()
}

// GetOrSet returns the cached value for key, computing and storing it with
// fn on a miss. A short-lived lock key keeps concurrent misses from all
// calling fn.
func (c *RedisCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() (interface{}, error)) ([]byte, error) {
	if data, err := c.Get(ctx, key); err == nil {
		return data, nil
	}

	lockKey := fmt.Sprintf("lock:%s", key)
	acquired, err := c.SetNX(ctx, lockKey, "1", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !acquired {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; i < 50; i++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-ticker.C:
			}
			if data, err := c.Get(ctx, key); err == nil {
				return data, nil
			}
		}
		return nil, fmt.Errorf("timeout waiting for cache update")
	}
	defer c.Del(context.WithoutCancel(ctx), lockKey)

	value, err := fn()
	if err != nil {
		return nil, fmt.Errorf("failed to generate value: %w", err)
	}

	data, err := encode(value)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store value in cache: %w", err)
	}
	return data, nil
}

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value: %w", err)
		}
		return data, nil
	}
}
