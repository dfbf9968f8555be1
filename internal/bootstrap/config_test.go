package bootstrap

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/notesapp/notes-console/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogger(config.ObservabilityConfig{LogLevel: "warn", LogFormat: config.LogFormatJSON}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Same(t, logger, slog.Default())

	buf.Reset()
	InitLogger(config.ObservabilityConfig{LogLevel: "debug", LogFormat: config.LogFormatText}, &buf).Debug("dbg")
	assert.Contains(t, buf.String(), "msg=dbg")
}

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", "https://notes.test")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://notes.test", cfg.API.BaseURL)
	assert.Equal(t, config.StorageBackendMemory, cfg.Storage.Backend)
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_BACKEND", "floppy")

	_, err := LoadConfig()
	assert.Error(t, err)
}
