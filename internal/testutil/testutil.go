// Package testutil holds helpers for tests that need live infrastructure.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// redisCandidates lists addresses tried when REDIS_ADDR is unset:
// the compose service name, then a local instance.
var redisCandidates = []string{"redis:6379", "localhost:6379"}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// requireRedis turns a missing Redis into a failure instead of a skip.
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }

func ping(addr string) error {
	c := redis.NewClient(&redis.Options{Addr: addr})
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return c.Ping(ctx).Err()
}

// RedisAddr returns the first reachable Redis address. REDIS_ADDR, when
// set, is the only address tried.
func RedisAddr(t testing.TB) (string, bool) {
	t.Helper()
	candidates := redisCandidates
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		candidates = []string{addr}
	}
	for _, addr := range candidates {
		if err := ping(addr); err != nil {
			t.Logf("redis not available at %s: %v", addr, err)
			continue
		}
		return addr, true
	}
	return "", false
}

// SetupTestRedis returns a client for a reachable Redis and skips the test
// otherwise (or fails it when TEST_REQUIRE_REDIS is set). The client is
// closed on cleanup.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	addr, ok := RedisAddr(t)
	if !ok {
		if requireRedis() {
			t.Fatal("redis not available for testing")
		}
		t.Skip("redis not available for testing")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("close redis client: %v", err)
		}
	})
	return client
}

// KeyPrefix returns a session key prefix unique to this test. Every key
// under it is deleted on cleanup, so tests can share one Redis database.
func KeyPrefix(t testing.TB, client redis.UniversalClient) string {
	t.Helper()
	prefix := "notes:test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := client.Del(ctx, iter.Val()).Err(); err != nil {
				t.Logf("delete test key %s: %v", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			t.Logf("scan test keys: %v", err)
		}
	})
	return prefix
}
