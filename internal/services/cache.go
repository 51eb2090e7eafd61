package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache fronts redis for generated plans and place lookups. Misses and redis
// outages look the same to callers: the value is simply recomputed.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	if c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis get %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("redis set %s: %v", key, err)
	}
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("redis del %s: %v", key, err)
	}
}
