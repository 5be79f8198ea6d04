package eventpublisher

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStreamPublisher appends messages to one Redis stream per topic.
type RedisStreamPublisher struct {
	client redis.Cmdable
	maxLen int64
}

// NewRedisStreamPublisher creates a publisher that trims streams to roughly maxLen entries.
// A maxLen of 0 disables trimming.
func NewRedisStreamPublisher(client redis.Cmdable, maxLen int64) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, maxLen: maxLen}
}

// Publish adds msg to the stream named after its topic.
func (p *RedisStreamPublisher) Publish(ctx context.Context, msg Message) error {
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: msg.Topic,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: map[string]any{
			"id":      msg.ID,
			"key":     msg.Key,
			"payload": string(msg.Body),
		},
	}).Err()
}
