package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// GalleryKey holds the cached public gallery listing.
const GalleryKey = "artworks:gallery"

// Client caches JSON values in Redis. A nil *Client is a valid no-op cache,
// so callers never have to guard against the cache being unconfigured.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection.
func New(addr, password string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

// Get retrieves a value and unmarshals it into dest. The bool reports a hit.
func (c *Client) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores a value with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Delete drops a key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}
