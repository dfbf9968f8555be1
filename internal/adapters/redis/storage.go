// Package redis provides a Redis-backed session storage so several
// notesctl processes (or hosts) can share one logged-in session.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a Redis-based ports.SessionStorage.
// Keys are namespaced with a prefix; an optional TTL bounds how long a
// session outlives its last write.
type Storage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// DefaultKeyPrefix namespaces session keys when no prefix is configured.
const DefaultKeyPrefix = "notes:session:"

// NewStorageWithOptions creates a Redis storage with a key prefix and TTL.
// An empty prefix means DefaultKeyPrefix; a zero TTL keeps keys until
// they are removed.
func NewStorageWithOptions(client redis.UniversalClient, prefix string, ttl time.Duration) *Storage {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Storage{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}

	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping verifies connectivity; used at startup to warn before login.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
