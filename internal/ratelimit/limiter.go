package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultLimit  = 30
	DefaultWindow = time.Minute
)

var errBadReply = errors.New("ratelimit: unexpected script reply")

// Limiter is a fixed-window counter kept in Redis. A nil Client disables
// limiting.
type Limiter struct {
	Client redis.Scripter
	Prefix string
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one Allow call. RetryAfter is the time left in
// the current window.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	limit := l.limit()
	if l == nil || l.Client == nil {
		return Decision{Allowed: true, Remaining: limit}, nil
	}

	res, err := allowScript.Run(ctx, l.Client, []string{l.Prefix + key}, limit, l.window().Milliseconds()).Result()
	if err != nil {
		return Decision{}, err
	}
	return decide(res, limit)
}

func (l *Limiter) limit() int {
	if l == nil || l.Limit <= 0 {
		return DefaultLimit
	}
	return l.Limit
}

func (l *Limiter) window() time.Duration {
	if l.Window <= 0 {
		return DefaultWindow
	}
	return l.Window
}

func decide(reply any, limit int) (Decision, error) {
	values, ok := reply.([]any)
	if !ok || len(values) != 2 {
		return Decision{}, errBadReply
	}
	count, ok1 := values[0].(int64)
	ttlMs, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return Decision{}, errBadReply
	}
	if ttlMs < 0 {
		ttlMs = 0
	}

	d := Decision{
		Allowed:    count <= int64(limit),
		Remaining:  max(limit-int(count), 0),
		RetryAfter: time.Duration(ttlMs) * time.Millisecond,
	}
	return d, nil
}
