package services

import (
	"context"
	"errors"
	"sync"

	"travelex-backend/utils"

	"github.com/redis/go-redis/v9"
)

// PreferenceStore is a scoped key-value store for small per-user settings.
type PreferenceStore interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Remove(ctx context.Context, scope, key string) error
}

const preferredCurrencyKey = "preferred-currency"

// staleCurrencyDefaults are previous defaults; a stored value in this set is
// discarded and reset to the current default.
var staleCurrencyDefaults = map[string]bool{"USD": true, "GBP": true}

// ResolvePreferredCurrency reads the stored currency code for scope, applying
// the migration rule: stale or unrecognized values fall back to the default,
// and stale values are removed from the store.
func ResolvePreferredCurrency(ctx context.Context, store PreferenceStore, scope string) (string, error) {
	saved, err := store.Get(ctx, scope, preferredCurrencyKey)
	if err != nil {
		return "", err
	}
	if staleCurrencyDefaults[saved] {
		if err := store.Remove(ctx, scope, preferredCurrencyKey); err != nil {
			return "", err
		}
		return utils.DefaultCurrency, nil
	}
	if saved != "" && utils.IsSupportedCurrency(saved) {
		return saved, nil
	}
	return utils.DefaultCurrency, nil
}

// SetPreferredCurrency stores the code for scope.
func SetPreferredCurrency(ctx context.Context, store PreferenceStore, scope, code string) error {
	return store.Set(ctx, scope, preferredCurrencyKey, code)
}

// RedisPreferenceStore keeps preferences in Redis under pref:<scope>:<key>.
type RedisPreferenceStore struct {
	Client *redis.Client
}

func NewRedisPreferenceStore(client *redis.Client) *RedisPreferenceStore {
	return &RedisPreferenceStore{Client: client}
}

func prefKey(scope, key string) string {
	return "pref:" + scope + ":" + key
}

func (s *RedisPreferenceStore) Get(ctx context.Context, scope, key string) (string, error) {
	val, err := s.Client.Get(ctx, prefKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisPreferenceStore) Set(ctx context.Context, scope, key, value string) error {
	return s.Client.Set(ctx, prefKey(scope, key), value, 0).Err()
}

func (s *RedisPreferenceStore) Remove(ctx context.Context, scope, key string) error {
	return s.Client.Del(ctx, prefKey(scope, key)).Err()
}

// MemoryPreferenceStore is the in-process fallback used when Redis isn't
// configured, and in tests.
type MemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{data: make(map[string]string)}
}

func (s *MemoryPreferenceStore) Get(ctx context.Context, scope, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[prefKey(scope, key)], nil
}

func (s *MemoryPreferenceStore) Set(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[prefKey(scope, key)] = value
	return nil
}

func (s *MemoryPreferenceStore) Remove(ctx context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, prefKey(scope, key))
	return nil
}
