// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"festa/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient is the dedicated client for session storage.
	SessionCacheClient *redis.Client
	// EventsClient is the dedicated client for domain-event publishing.
	EventsClient *redis.Client
)

// InitSessionCache initializes the Redis client backing the session store.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session storage.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitEventsClient initializes the Redis client used for event publishing.
func InitEventsClient() {
	EventsClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := EventsClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Events): %v", err)
	}
}

// GetEventsClient returns the Redis client for event publishing.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		InitEventsClient()
	}
	return EventsClient
}
