// Package toast renders user-visible notices on a terminal.
package toast

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/notesapp/notes-console/internal/ports"
)

var _ ports.Notifier = (*Writer)(nil)

// Writer prints notices as single lines and mirrors them to the logger.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

// New returns a Writer printing to out. A nil logger disables mirroring.
func New(out io.Writer, logger *slog.Logger) *Writer {
	return &Writer{out: out, logger: logger}
}

// Notify prints n as "[level] message".
func (w *Writer) Notify(ctx context.Context, n ports.Notice) {
	msg := strings.TrimSpace(n.Message)
	if msg == "" {
		return
	}
	level := n.Level
	if level == "" {
		level = ports.NoticeInfo
	}

	w.mu.Lock()
	_, _ = fmt.Fprintf(w.out, "[%s] %s\n", level, msg)
	w.mu.Unlock()

	if w.logger != nil {
		w.logger.Log(ctx, slogLevel(level), "notice", "level", string(level), "message", msg)
	}
}

func slogLevel(l ports.NoticeLevel) slog.Level {
	switch l {
	case ports.NoticeError:
		return slog.LevelError
	case ports.NoticeWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
