package utils

import (
	"context"
	"log"
	"time"

	"opsledger/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs general-purpose caching.
	CacheClient *redis.Client
	// AuthCacheClient holds validated actors keyed by token hash. It lives
	// in its own DB so flushing one cache never touches the other.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int, label string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis %s unreachable: %v", label, err)
	}
	return client
}

// InitCache connects the general cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
}

// GetCacheClient returns the general cache client, connecting on first use.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache connects the auth cache client.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "auth cache")
}

// GetAuthCacheClient returns the auth cache client, connecting on first use.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
