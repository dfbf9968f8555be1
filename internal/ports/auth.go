// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
)

// SessionStorage is the persisted key/value store that holds the session.
// A missing key is reported with ok=false and a nil error.
type SessionStorage interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Navigator commits navigations to a view path.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// NoticeLevel classifies a user-visible message.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-visible message (toast).
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier surfaces user-visible messages.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}
