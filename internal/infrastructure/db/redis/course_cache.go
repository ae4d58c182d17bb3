package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// CourseCache stores each account's course ids as a JSON array.
// Key format: courses:<account>
type CourseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCourseCache wraps client. A non-positive ttl falls back to 5m.
func NewCourseCache(client *redis.Client, ttl time.Duration) *CourseCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CourseCache{client: client, ttl: ttl}
}

// Get returns the cached ids for account; found is false on a miss.
func (c *CourseCache) Get(ctx context.Context, account string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(account)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("course cache get: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false, fmt.Errorf("course cache decode: %w", err)
	}
	return ids, true, nil
}

// Set records ids for account until the TTL elapses. A nil slice is stored
// as an empty list so accounts without courses are cached too.
func (c *CourseCache) Set(ctx context.Context, account string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("course cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(account), raw, c.ttl).Err()
}

func (c *CourseCache) key(account string) string {
	return "courses:" + account
}
