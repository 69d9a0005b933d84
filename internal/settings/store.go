package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	autoPrintKey  = "auto_print"
	autoStatusKey = "auto_status"
)

// Store persists the board toggles.
type Store interface {
	Load(ctx context.Context, defaults Flags) (Flags, error)
	Save(ctx context.Context, flags Flags) error
}

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SettingsKey(name string) string
}

// RedisStore keeps each toggle under its own key without expiry.
type RedisStore struct {
	client redisClient
}

// NewRedisStore builds a Redis-backed settings store.
func NewRedisStore(client redisClient) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required for settings store")
	}
	return &RedisStore{client: client}, nil
}

// Load reads both toggles; a missing key keeps the default for that toggle.
func (s *RedisStore) Load(ctx context.Context, defaults Flags) (Flags, error) {
	flags := defaults
	autoPrint, err := s.readBool(ctx, autoPrintKey, defaults.AutoPrint)
	if err != nil {
		return defaults, err
	}
	autoStatus, err := s.readBool(ctx, autoStatusKey, defaults.AutoStatus)
	if err != nil {
		return defaults, err
	}
	flags.AutoPrint = autoPrint
	flags.AutoStatus = autoStatus
	return flags, nil
}

// Save writes both toggles.
func (s *RedisStore) Save(ctx context.Context, flags Flags) error {
	if err := s.client.Set(ctx, s.client.SettingsKey(autoPrintKey), strconv.FormatBool(flags.AutoPrint), 0); err != nil {
		return fmt.Errorf("save %s: %w", autoPrintKey, err)
	}
	if err := s.client.Set(ctx, s.client.SettingsKey(autoStatusKey), strconv.FormatBool(flags.AutoStatus), 0); err != nil {
		return fmt.Errorf("save %s: %w", autoStatusKey, err)
	}
	return nil
}

func (s *RedisStore) readBool(ctx context.Context, name string, fallback bool) (bool, error) {
	raw, err := s.client.Get(ctx, s.client.SettingsKey(name))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load %s: %w", name, err)
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", name, err)
	}
	return value, nil
}

// MemoryStore keeps toggles in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	flags *Flags
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context, defaults Flags) (Flags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flags == nil {
		return defaults, nil
	}
	return *s.flags, nil
}

func (s *MemoryStore) Save(_ context.Context, flags Flags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := flags
	s.flags = &stored
	return nil
}
