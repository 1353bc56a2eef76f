package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"asd-screen/internal/domain"
)

func TestMemoryWizardStateStore_Basics(t *testing.T) {
	store := NewMemoryWizardStateStore(time.Hour)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "s1"); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	info := validPersonalInfo()
	if err := store.Put(ctx, "s1", info); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok || got != info {
		t.Fatalf("unexpected get: %+v ok=%v err=%v", got, ok, err)
	}

	if _, ok, _ := store.Get(ctx, "s2"); ok {
		t.Fatalf("state must not leak across sessions")
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected state cleared after delete")
	}

	if err := store.Put(ctx, " ", info); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for empty session id, got %v", err)
	}
}

func TestMemoryWizardStateStore_OverwriteIsIdempotent(t *testing.T) {
	store := NewMemoryWizardStateStore(time.Hour)
	ctx := context.Background()

	first := validPersonalInfo()
	second := validPersonalInfo()
	second.Gender = "m"

	_ = store.Put(ctx, "s1", first)
	_ = store.Put(ctx, "s1", first)
	if got, _, _ := store.Get(ctx, "s1"); got != first {
		t.Fatalf("expected identical resubmission to keep the same value")
	}
	_ = store.Put(ctx, "s1", second)
	if got, _, _ := store.Get(ctx, "s1"); got.Gender != "m" {
		t.Fatalf("expected last write to win, got %+v", got)
	}
	if n := len(store.(*memoryWizardStateStore).items); n != 1 {
		t.Fatalf("expected one entry per session, got %d", n)
	}
}

func TestMemoryWizardStateStore_Expiry(t *testing.T) {
	store := NewMemoryWizardStateStore(time.Minute).(*memoryWizardStateStore)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_ = store.Put(context.Background(), "s1", validPersonalInfo())
	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Get(context.Background(), "s1"); ok {
		t.Fatalf("expected entry to expire with the session ttl")
	}
}

func TestMemoryWizardStateStore_PutSweepsAbandonedSessions(t *testing.T) {
	store := NewMemoryWizardStateStore(time.Minute).(*memoryWizardStateStore)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_ = store.Put(ctx, fmt.Sprintf("s%d", i), validPersonalInfo())
	}
	now = now.Add(2 * time.Minute)
	if err := store.Put(ctx, "fresh", validPersonalInfo()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if n := len(store.items); n != 1 {
		t.Fatalf("expected abandoned sessions to be swept, got %d entries", n)
	}
}

type mockRedisKVClient struct {
	data map[string]string

	lastSetKey string
	lastSetTTL time.Duration
	lastDel    []string

	getErr error
}

func newMockRedisKVClient() *mockRedisKVClient {
	return &mockRedisKVClient{data: make(map[string]string)}
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetTTL = expiration
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *mockRedisKVClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	for _, k := range keys {
		delete(m.data, k)
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestRedisWizardStateStore(t *testing.T) {
	ctx := context.Background()
	mock := newMockRedisKVClient()
	store := &redisWizardStateStore{client: mock, ttl: 30 * time.Minute, prefix: "wizard:personal:"}

	t.Run("missing key", func(t *testing.T) {
		if _, ok, err := store.Get(ctx, "s1"); ok || err != nil {
			t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("put stores json with ttl", func(t *testing.T) {
		info := validPersonalInfo()
		if err := store.Put(ctx, "s1", info); err != nil {
			t.Fatalf("put: %v", err)
		}
		if mock.lastSetKey != "wizard:personal:s1" || mock.lastSetTTL != 30*time.Minute {
			t.Fatalf("unexpected key/ttl: %s %v", mock.lastSetKey, mock.lastSetTTL)
		}
		var stored domain.PersonalInfo
		if err := json.Unmarshal([]byte(mock.data["wizard:personal:s1"]), &stored); err != nil || stored != info {
			t.Fatalf("unexpected stored payload: %v %+v", err, stored)
		}
		got, ok, err := store.Get(ctx, "s1")
		if err != nil || !ok || got != info {
			t.Fatalf("unexpected get: %+v ok=%v err=%v", got, ok, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(ctx, "s1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if len(mock.lastDel) != 1 || mock.lastDel[0] != "wizard:personal:s1" {
			t.Fatalf("unexpected delete keys: %v", mock.lastDel)
		}
		if _, ok, _ := store.Get(ctx, "s1"); ok {
			t.Fatalf("expected miss after delete")
		}
	})

	t.Run("redis error propagates", func(t *testing.T) {
		mock.getErr = errors.New("redis down")
		defer func() { mock.getErr = nil }()
		if _, _, err := store.Get(ctx, "s1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
