// Package session holds the client-side authentication state: the bearer
// token, the cached user summary and the derived login flag.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/notesapp/notes-console/internal/domain/auth"
	apperrors "github.com/notesapp/notes-console/internal/errors"
	"github.com/notesapp/notes-console/internal/ports"
	"golang.org/x/oauth2"
)

var (
	// ErrStorageUnavailable reports that the session could not be persisted
	// and is held in memory only for the rest of the process lifetime.
	ErrStorageUnavailable = errors.New("session storage unavailable")

	// ErrNoToken is returned by Token when no session is held.
	ErrNoToken = errors.New("no auth token")
)

// Option configures a TokenStore.
type Option func(*TokenStore)

// WithLogger sets the logger used for storage warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *TokenStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// TokenStore is the single source of truth for the auth token and the
// login flag. Reads fall back to "no token" on storage failure; writes
// that fail switch the store to memory-only mode and report
// ErrStorageUnavailable.
type TokenStore struct {
	storage ports.SessionStorage
	logger  *slog.Logger

	loggedIn *Signal[bool]

	mu         sync.RWMutex
	user       *domainauth.UserSummary
	memToken   string
	memUser    *domainauth.UserSummary
	memoryOnly bool
}

// NewTokenStore creates a store backed by storage. Call Load to read the
// persisted session before first use.
func NewTokenStore(storage ports.SessionStorage, opts ...Option) *TokenStore {
	s := &TokenStore{
		storage:  storage,
		logger:   slog.Default(),
		loggedIn: NewSignal(false),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load initializes LoginState and the cached user from storage.
func (s *TokenStore) Load(ctx context.Context) {
	_, hasToken := s.GetToken(ctx)
	user, hasUser := s.GetUser(ctx)

	s.mu.Lock()
	if hasUser {
		s.user = &user
	} else {
		s.user = nil
	}
	s.mu.Unlock()

	s.loggedIn.Set(hasToken)
}

// Refresh re-reads storage. Another process sharing the storage may have
// logged in or out since Load; the last write wins. In memory-only mode
// the in-memory session is authoritative and storage is not consulted,
// so changes made by other processes are not picked up.
func (s *TokenStore) Refresh(ctx context.Context) {
	s.Load(ctx)
}

// SetToken persists token and flips LoginState to true.
// The token shape is not validated; the server is authoritative.
func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ValidationField("token", "token must not be empty")
	}

	err := s.write(ctx, domainauth.TokenKey, token, func() { s.memToken = token })
	s.loggedIn.Set(true)
	return err
}

// GetToken returns the persisted token. It never mutates LoginState.
func (s *TokenStore) GetToken(ctx context.Context) (string, bool) {
	s.mu.RLock()
	if s.memoryOnly {
		tok := s.memToken
		s.mu.RUnlock()
		return tok, tok != ""
	}
	s.mu.RUnlock()

	tok, ok, err := s.storage.Get(ctx, domainauth.TokenKey)
	if err != nil {
		s.logger.WarnContext(ctx, "read auth token failed", "error", err)
		return "", false
	}
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// Token adapts the store to oauth2's token shape.
func (s *TokenStore) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, ok := s.GetToken(ctx)
	if !ok {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// SetUser persists the user summary alongside the token.
func (s *TokenStore) SetUser(ctx context.Context, user domainauth.UserSummary) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	u := user
	werr := s.write(ctx, domainauth.UserKey, string(data), func() { s.memUser = &u })

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	s.loggedIn.Set(s.loggedIn.Value())
	return werr
}

// GetUser reads the persisted user summary.
func (s *TokenStore) GetUser(ctx context.Context) (domainauth.UserSummary, bool) {
	s.mu.RLock()
	if s.memoryOnly {
		u := s.memUser
		s.mu.RUnlock()
		if u == nil {
			return domainauth.UserSummary{}, false
		}
		return *u, true
	}
	s.mu.RUnlock()

	raw, ok, err := s.storage.Get(ctx, domainauth.UserKey)
	if err != nil {
		s.logger.WarnContext(ctx, "read auth user failed", "error", err)
		return domainauth.UserSummary{}, false
	}
	if !ok || raw == "" {
		return domainauth.UserSummary{}, false
	}

	var user domainauth.UserSummary
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.WarnContext(ctx, "decode auth user failed", "error", err)
		return domainauth.UserSummary{}, false
	}
	return user, true
}

// CurrentUser returns the cached user without touching storage.
func (s *TokenStore) CurrentUser() (domainauth.UserSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domainauth.UserSummary{}, false
	}
	return *s.user, true
}

// IsLoggedIn returns the cached LoginState.
func (s *TokenStore) IsLoggedIn() bool {
	return s.loggedIn.Value()
}

// LoginState exposes the login flag for subscribers.
func (s *TokenStore) LoginState() *Signal[bool] {
	return s.loggedIn
}

// MemoryOnly reports whether a storage write or removal has failed during this
// process lifetime.
func (s *TokenStore) MemoryOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memoryOnly
}

// ClearSession removes token and user and flips LoginState to false.
// Calling it while logged out re-emits false. Removal is attempted even in
// memory-only mode so a previously persisted session does not outlive the
// logout. If removal fails the store becomes memory-only so the stale
// token is never read back.
func (s *TokenStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.memToken = ""
	s.memUser = nil
	s.mu.Unlock()

	err := s.remove(ctx, "clear session", nil, domainauth.TokenKey, domainauth.UserKey)
	s.loggedIn.Set(false)
	return err
}

// ClearUser removes the cached and persisted user summary, leaving the
// token and LoginState untouched.
func (s *TokenStore) ClearUser(ctx context.Context) error {
	tok, hasTok := s.GetToken(ctx)

	s.mu.Lock()
	s.user = nil
	s.memUser = nil
	s.mu.Unlock()

	err := s.remove(ctx, "clear user", func() {
		if hasTok && s.memToken == "" {
			s.memToken = tok
		}
	}, domainauth.UserKey)
	s.loggedIn.Set(s.loggedIn.Value())
	return err
}

// remove deletes keys from storage. Any failure switches the store to
// memory-only mode, applying carry under lock, and is reported as
// ErrStorageUnavailable.
func (s *TokenStore) remove(ctx context.Context, op string, carry func(), keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := s.storage.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}

	// Storage may still hold the removed values; stop reading them.
	s.mu.Lock()
	s.memoryOnly = true
	if carry != nil {
		carry()
	}
	s.mu.Unlock()

	joined := errors.Join(errs...)
	s.logger.WarnContext(ctx, op+" storage failed", "error", joined)
	return apperrors.Wrap(errors.Join(ErrStorageUnavailable, joined), apperrors.ErrCodeStorageUnavailable, op)
}

// Snapshot returns the current session as held in memory and storage.
func (s *TokenStore) Snapshot(ctx context.Context) domainauth.Session {
	tok, _ := s.GetToken(ctx)
	sess := domainauth.Session{Token: tok}
	if u, ok := s.CurrentUser(); ok {
		sess.User = &u
	}
	return sess
}

// write persists key=value. On failure it switches to memory-only mode,
// copying what is already persisted, and applies memSet under lock.
func (s *TokenStore) write(ctx context.Context, key, value string, memSet func()) error {
	s.mu.RLock()
	memoryOnly := s.memoryOnly
	s.mu.RUnlock()

	if !memoryOnly {
		err := s.storage.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		s.degrade(ctx)
		s.mu.Lock()
		memSet()
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "session storage write failed; session is memory-only", "key", key, "error", err)
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeStorageUnavailable,
			Message: "session will not survive a restart",
			Cause:   errors.Join(ErrStorageUnavailable, err),
		}
	}

	s.mu.Lock()
	memSet()
	s.mu.Unlock()
	return nil
}

// degrade switches to memory-only mode, carrying over any readable state.
func (s *TokenStore) degrade(ctx context.Context) {
	tok, hasTok := s.GetToken(ctx)
	user, hasUser := s.GetUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memoryOnly {
		return
	}
	s.memoryOnly = true
	if hasTok {
		s.memToken = tok
	}
	if hasUser {
		u := user
		s.memUser = &u
	}
}
