package identity

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubjectCache remembers subjects known to have a user record so the gateway
// can skip the store lookup on hot paths. Only positive facts are cached:
// registration is irreversible in this system, so an entry can never go
// stale in a way that wrongly admits a request.
type SubjectCache interface {
	IsRegistered(ctx context.Context, subjectID string) (bool, error)
	MarkRegistered(ctx context.Context, subjectID string) error
}

const subjectKeyPrefix = "feria:registered:"

// RedisSubjectCache is the Redis-backed SubjectCache.
type RedisSubjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSubjectCache(client *redis.Client, ttl time.Duration) *RedisSubjectCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisSubjectCache{client: client, ttl: ttl}
}

func (c *RedisSubjectCache) IsRegistered(ctx context.Context, subjectID string) (bool, error) {
	n, err := c.client.Exists(ctx, subjectKeyPrefix+subjectID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisSubjectCache) MarkRegistered(ctx context.Context, subjectID string) error {
	return c.client.Set(ctx, subjectKeyPrefix+subjectID, "1", c.ttl).Err()
}

// NopCache always misses. Used when Redis is not configured.
type NopCache struct{}

func (NopCache) IsRegistered(context.Context, string) (bool, error) { return false, nil }
func (NopCache) MarkRegistered(context.Context, string) error       { return nil }
