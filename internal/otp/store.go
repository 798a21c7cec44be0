// Package otp holds short-lived verification state: email OTP codes and
// phone-verification session handles. Every entry carries a TTL, including on
// the in-process fallback path, so nothing accumulates unbounded.
package otp

import (
	"context"
	"sync"
	"time"

	"github.com/noorjahan04/City-Backend/internal/cache"
)

// DefaultTTL is how long a stored code or session handle stays valid.
const DefaultTTL = 10 * time.Minute

// Store is an expiring key-value store for one-time codes.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get reads a value without consuming it. Returns "" when the key is
	// missing or expired.
	Get(ctx context.Context, key string) (string, error)
	// GetAndDelete consumes a value. Returns "" when the key is missing or
	// expired.
	GetAndDelete(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// redisStore keeps codes in Redis, letting the server handle expiry.
type redisStore struct {
	cache  *cache.Client
	prefix string
}

// NewRedisStore builds a Store on the shared redis client.
func NewRedisStore(c *cache.Client, prefix string) Store {
	return &redisStore{cache: c, prefix: prefix}
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.cache.Set(ctx, s.prefix+key, []byte(value), ttl)
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	data, err := s.cache.Get(ctx, s.prefix+key)
	if err != nil || data == nil {
		return "", err
	}
	return string(data), nil
}

func (s *redisStore) GetAndDelete(ctx context.Context, key string) (string, error) {
	data, err := s.cache.Get(ctx, s.prefix+key)
	if err != nil || data == nil {
		return "", err
	}
	_ = s.cache.Delete(ctx, s.prefix+key)
	return string(data), nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.prefix+key)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryStore is the single-process fallback. Expiry is enforced on read and
// by a janitor loop.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore builds an in-process Store with active expiry.
func NewMemoryStore() Store {
	s := &memoryStore{entries: make(map[string]memoryEntry)}
	go s.cleanupLoop()
	return s
}

func (s *memoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", nil
	}
	return entry.value, nil
}

func (s *memoryStore) GetAndDelete(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", nil
	}
	delete(s.entries, key)
	if time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.value, nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memoryStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for key, entry := range s.entries {
			if now.After(entry.expiresAt) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}
