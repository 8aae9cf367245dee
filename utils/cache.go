package utils

import (
	"context"
	"log"
	"time"

	"rentvehicle/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for session records.
	AuthCacheClient *redis.Client
	// OTPCacheClient is the dedicated client for one-time codes and
	// pending admin logins.
	OTPCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	}
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for session records.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}

// GetOTPCacheClient returns the Redis client for one-time codes.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	}
	return OTPCacheClient
}
