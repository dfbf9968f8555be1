package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StorageBackend selects where the session is persisted.
type StorageBackend string

const (
	// StorageBackendFile keeps the session in a local JSON file.
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis keeps the session in Redis, shared between hosts.
	StorageBackendRedis StorageBackend = "redis"
	// StorageBackendMemory keeps the session for the process lifetime only.
	StorageBackendMemory StorageBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis", "memory":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, redis, memory)", v)
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:""`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}

// StorageConfig groups session storage configuration.
type StorageConfig struct {
	// Backend selects the session storage implementation.
	Backend StorageBackend `env:"STORAGE_BACKEND" envDefault:"file"`

	// FilePath is the session file used by the file backend.
	// Defaults to <user config dir>/notesctl/session.json.
	FilePath string `env:"STORAGE_FILE_PATH"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"notes:session:"`

	// TTL expires the Redis session keys; zero keeps them until logout.
	TTL time.Duration `env:"STORAGE_TTL" envDefault:"0s"`

	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize fills derived defaults.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageBackendFile
	}
	s.FilePath = strings.TrimSpace(s.FilePath)
	if s.FilePath == "" {
		s.FilePath = DefaultSessionFile()
	}
	if s.TTL < 0 {
		s.TTL = 0
	}

	nodes := s.Redis.SentinelNodes[:0]
	for _, n := range s.Redis.SentinelNodes {
		if n = strings.TrimSpace(n); n != "" {
			nodes = append(nodes, n)
		}
	}
	s.Redis.SentinelNodes = nodes
}

// DefaultSessionFile returns the per-user session file location.
func DefaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "notesctl", "session.json")
}
