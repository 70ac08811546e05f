package snippets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PabloPavan/snipmark_api/internal/tags"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "snipmark:cache:"
	}
	return &RedisCache{client: client, prefix: p}
}

func (c *RedisCache) keyOne(key string) string {
	return c.prefix + "snippet:" + key
}

func (c *RedisCache) keyList(key string) string {
	return c.prefix + "snippet:list:" + key
}

func (c *RedisCache) keyTags(key string) string {
	return c.prefix + "tags:" + key
}

func (c *RedisCache) GetOne(ctx context.Context, key string) (*Snippet, bool, error) {
	var s Snippet
	ok, err := c.get(ctx, c.keyOne(key), &s)
	if !ok || err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (c *RedisCache) SetOne(ctx context.Context, key string, s *Snippet, ttl time.Duration) error {
	return c.set(ctx, c.keyOne(key), s, ttl)
}

func (c *RedisCache) GetList(ctx context.Context, key string) ([]*Snippet, bool, error) {
	var out []*Snippet
	ok, err := c.get(ctx, c.keyList(key), &out)
	if !ok || err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *RedisCache) SetList(ctx context.Context, key string, snippets []*Snippet, ttl time.Duration) error {
	return c.set(ctx, c.keyList(key), snippets, ttl)
}

func (c *RedisCache) GetTags(ctx context.Context, key string) ([]tags.Frequency, bool, error) {
	var out []tags.Frequency
	ok, err := c.get(ctx, c.keyTags(key), &out)
	if !ok || err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *RedisCache) SetTags(ctx context.Context, key string, freq []tags.Frequency, ttl time.Duration) error {
	return c.set(ctx, c.keyTags(key), freq, ttl)
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
