package cache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"fastplan/internal/infra"
	"fastplan/internal/services"
)

var Module = fx.Provide(
	provideRedisClient, provideCache)

func provideRedisClient() *redis.Client {
	return infra.InitRedis()
}

func provideCache(client *redis.Client) services.Cache {
	return services.NewRedisCache(client)
}
