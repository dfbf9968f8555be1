// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/notesapp/notes-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStorage = (*MemoryStorage)(nil)
	_ ports.Navigator      = (*RecordingNavigator)(nil)
	_ ports.Notifier       = (*RecordingNotifier)(nil)
)

// ErrStorageDisabled is returned by MemoryStorage when a failure is injected.
var ErrStorageDisabled = errors.New("storage disabled")

// MemoryStorage is an in-memory SessionStorage with failure injection.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string

	// FailGet, FailSet and FailRemove make the matching operation return
	// ErrStorageDisabled.
	FailGet    bool
	FailSet    bool
	FailRemove bool

	SetCalls    int
	RemoveCalls int
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet {
		return "", false, ErrStorageDisabled
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.FailSet {
		return ErrStorageDisabled
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	if m.FailRemove {
		return ErrStorageDisabled
	}
	delete(m.values, key)
	return nil
}

// Raw returns the stored value ignoring injected failures.
func (m *MemoryStorage) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// RecordingNavigator records every navigation request.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string

	// NavigateFunc, when set, runs after the path is recorded.
	NavigateFunc func(ctx context.Context, path string) error
}

func (n *RecordingNavigator) Navigate(ctx context.Context, path string) error {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	fn := n.NavigateFunc
	n.mu.Unlock()
	if fn != nil {
		return fn(ctx, path)
	}
	return nil
}

// Paths returns a copy of the recorded paths.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// RecordingNotifier records every notice.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (n *RecordingNotifier) Notify(_ context.Context, notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Notices returns a copy of the recorded notices.
func (n *RecordingNotifier) Notices() []ports.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notice(nil), n.notices...)
}
