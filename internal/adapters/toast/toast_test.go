package toast

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/notesapp/notes-console/internal/ports"
	"github.com/stretchr/testify/assert"
)

func TestWriter_Notify(t *testing.T) {
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w := New(&out, logger)
	ctx := context.Background()

	w.Notify(ctx, ports.Notice{Level: ports.NoticeError, Message: "admins only"})
	w.Notify(ctx, ports.Notice{Message: " saved "})
	w.Notify(ctx, ports.Notice{Level: ports.NoticeWarning, Message: "   "})

	assert.Equal(t, "[error] admins only\n[info] saved\n", out.String())
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), `message="admins only"`)
}

func TestWriter_NilLogger(t *testing.T) {
	var out bytes.Buffer
	New(&out, nil).Notify(context.Background(), ports.Notice{Level: ports.NoticeSuccess, Message: "ok"})
	assert.Equal(t, "[success] ok\n", out.String())
}
