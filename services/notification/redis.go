package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"festa/models"

	"github.com/go-redis/redis/v8"
)

// EventsChannel is the Redis pub/sub channel domain events go out on.
const EventsChannel = "events:bookings"

// RedisPublisher publishes booking events as JSON on a Redis channel.
type RedisPublisher struct {
	Client *redis.Client
}

// NewRedisPublisher creates a publisher on the given client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{Client: client}
}

var _ Publisher = (*RedisPublisher)(nil)

func (p *RedisPublisher) Publish(ctx context.Context, event models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.Client.Publish(ctx, EventsChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
