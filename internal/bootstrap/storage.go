package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/notesapp/notes-console/config"
	"github.com/notesapp/notes-console/internal/adapters/filestore"
	"github.com/notesapp/notes-console/internal/adapters/memstore"
	redisadapter "github.com/notesapp/notes-console/internal/adapters/redis"
	"github.com/notesapp/notes-console/internal/ports"
	"github.com/redis/go-redis/v9"
)

// StorageHandle is the selected session storage and a function releasing
// its resources.
type StorageHandle struct {
	Storage ports.SessionStorage
	Backend config.StorageBackend
	Close   func() error
}

// BuildStorage constructs the session storage selected by cfg.Backend.
func BuildStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (StorageHandle, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.StorageBackendMemory:
		return StorageHandle{Storage: memstore.New(), Backend: cfg.Backend, Close: noop}, nil

	case config.StorageBackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return StorageHandle{}, err
		}
		st := redisadapter.NewStorageWithOptions(client, cfg.KeyPrefix, cfg.TTL)
		return StorageHandle{Storage: st, Backend: cfg.Backend, Close: client.Close}, nil

	case config.StorageBackendFile, "":
		st, err := filestore.New(cfg.FilePath)
		if err != nil {
			return StorageHandle{}, fmt.Errorf("open session file: %w", err)
		}
		if logger != nil {
			logger.DebugContext(ctx, "session file storage", "path", st.Path())
		}
		return StorageHandle{Storage: st, Backend: config.StorageBackendFile, Close: noop}, nil

	default:
		return StorageHandle{}, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// ConnectRedis establishes a connection to Redis.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick direct or sentinel clients at runtime.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	var (
		client   redis.UniversalClient
		addrDesc string
		err      error
	)

	if cfg.UseSentinel {
		client, addrDesc, err = newSentinelClient(cfg)
	} else {
		client, addrDesc, err = newDirectClient(cfg)
	}
	if err != nil {
		return nil, err
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.InfoContext(ctx, "redis connected", "addr", redactAddr(addrDesc))
	}
	return client, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newSentinelClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	if len(cfg.SentinelNodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    cfg.SentinelNodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               cfg.DB,
	})
	return client, "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newDirectClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		if opt.Password == "" {
			opt.Password = cfg.Password
		}
		return redis.NewClient(opt), uri, nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), uri, nil
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// redactAddr strips credentials from a Redis address for logging.
func redactAddr(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addr, "@"); i > -1 {
		return addr[i+1:]
	}
	return addr
}
