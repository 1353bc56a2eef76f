package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"asd-screen/internal/domain"
)

// WizardStateStore guarda el PersonalInfo en curso de cada sesion entre el
// paso personal-info y el paso predict. Last-write-wins por sesion.
type WizardStateStore interface {
	Put(ctx context.Context, sessionID string, info domain.PersonalInfo) error
	Get(ctx context.Context, sessionID string) (domain.PersonalInfo, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type wizardEntry struct {
	info      domain.PersonalInfo
	expiresAt time.Time
}

type memoryWizardStateStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]wizardEntry
	now   func() time.Time
}

// NewMemoryWizardStateStore crea un store en memoria; las entradas vencen con
// la sesion que las creo.
func NewMemoryWizardStateStore(ttl time.Duration) WizardStateStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &memoryWizardStateStore{
		ttl:   ttl,
		items: make(map[string]wizardEntry),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *memoryWizardStateStore) Put(_ context.Context, sessionID string, info domain.PersonalInfo) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, id)
		}
	}
	s.items[sessionID] = wizardEntry{info: info, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *memoryWizardStateStore) Get(_ context.Context, sessionID string) (domain.PersonalInfo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[sessionID]
	if !ok {
		return domain.PersonalInfo{}, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.items, sessionID)
		return domain.PersonalInfo{}, false, nil
	}
	return entry.info, true, nil
}

func (s *memoryWizardStateStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}

type redisKVClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisWizardStateStore struct {
	client redisKVClient
	ttl    time.Duration
	prefix string
}

// NewRedisWizardStateStore comparte el estado del wizard entre instancias.
func NewRedisWizardStateStore(client *redis.Client, ttl time.Duration) WizardStateStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &redisWizardStateStore{
		client: client,
		ttl:    ttl,
		prefix: "wizard:personal:",
	}
}

func (s *redisWizardStateStore) Put(ctx context.Context, sessionID string, info domain.PersonalInfo) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionInvalid
	}
	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+sessionID, payload, s.ttl).Err()
}

func (s *redisWizardStateStore) Get(ctx context.Context, sessionID string) (domain.PersonalInfo, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.PersonalInfo{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PersonalInfo{}, false, nil
	}
	if err != nil {
		return domain.PersonalInfo{}, false, err
	}
	var info domain.PersonalInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return domain.PersonalInfo{}, false, err
	}
	return info, true, nil
}

func (s *redisWizardStateStore) Delete(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
