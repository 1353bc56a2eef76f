package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore guarda los SessionID vigentes y permite revocarlos en logout.
type SessionStore interface {
	Store(sessionID, userID string, ttl time.Duration) error
	Exists(sessionID string) (bool, error)
	Revoke(sessionID string) error
}

type memorySessionStore struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		items: make(map[string]time.Time),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *memorySessionStore) Store(sessionID, _ string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	now := s.now()
	for id, exp := range s.items {
		if now.After(exp) {
			delete(s.items, id)
		}
	}
	s.items[sessionID] = now.Add(ttl)
	return nil
}

func (s *memorySessionStore) Exists(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.items[sessionID]
	if !ok {
		return false, nil
	}
	if s.now().After(exp) {
		delete(s.items, sessionID)
		return false, nil
	}
	return true, nil
}

func (s *memorySessionStore) Revoke(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}

type redisSessionClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisSessionStore struct {
	client redisSessionClient
	prefix string
}

// NewRedisSessionStore comparte las sesiones vigentes entre instancias.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	if client == nil {
		return nil
	}
	return &redisSessionStore{
		client: client,
		prefix: "auth:session:",
	}
}

func (s *redisSessionStore) Store(sessionID, userID string, ttl time.Duration) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+sessionID, userID, ttl).Err()
}

func (s *redisSessionStore) Exists(sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := s.client.Exists(ctx, s.prefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Revoke(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
