package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter limita la frecuencia de intentos de login por clave.
type LoginLimiter interface {
	Allow(key string) bool
}

type loginLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	swept  time.Time
	now    func() time.Time
}

// NewLoginLimiter crea un limitador de ventana deslizante en memoria.
func NewLoginLimiter(window time.Duration, max int) LoginLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &loginLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *loginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	if now.Sub(l.swept) >= l.window {
		l.sweep(cutoff)
		l.swept = now
	}
	kept := pruneHits(l.hits[key], cutoff)
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

// sweep descarta las claves sin intentos dentro de la ventana.
func (l *loginLimiter) sweep(cutoff time.Time) {
	for key, entries := range l.hits {
		kept := pruneHits(entries, cutoff)
		if len(kept) == 0 {
			delete(l.hits, key)
			continue
		}
		l.hits[key] = kept
	}
}

func pruneHits(entries []time.Time, cutoff time.Time) []time.Time {
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

const redisLoginAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisLoginLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisLoginLimiter usa una ventana fija en Redis (INCR + EXPIRE).
func NewRedisLoginLimiter(client *redis.Client, window time.Duration, max int) LoginLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "login:rl:",
	}
}

// Allow deja pasar si Redis no responde.
func (l *redisLoginLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisLoginAllowScript, []string{l.prefix + normalizedKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
