package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notesapp/notes-console/config"
	domainauth "github.com/notesapp/notes-console/internal/domain/auth"
	"github.com/notesapp/notes-console/internal/domain/model"
	apperrors "github.com/notesapp/notes-console/internal/errors"
	mockauth "github.com/notesapp/notes-console/internal/mocks/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.AppConfig {
	cfg := config.AppConfig{
		API:     config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Storage: config.StorageConfig{Backend: config.StorageBackendMemory},
	}
	cfg.Sanitize()
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend accepts one bearer token and revokes it once revoked is set.
func fakeBackend(t *testing.T, revoked *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Email ou mot de passe incorrect"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"token_type":   "bearer",
			"user":         map[string]any{"id": 1, "nom": "Root", "email": "root@x.io", "type": "admin"},
		})
	})
	mux.HandleFunc("GET /notes/", func(w http.ResponseWriter, r *http.Request) {
		if revoked.Load() || r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"total": 0, "page": 1, "limit": 20, "notes": []any{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildApp_SessionLifecycle(t *testing.T) {
	var revoked atomic.Bool
	srv := fakeBackend(t, &revoked)
	var notices bytes.Buffer
	storage := mockauth.NewMemoryStorage()

	app, err := BuildApp(context.Background(), AppDeps{
		Config:  testConfig(srv.URL),
		Logger:  quietLogger(),
		Out:     &notices,
		Storage: storage,
	})
	require.NoError(t, err)
	defer app.Close()
	ctx := context.Background()

	assert.False(t, app.Session.IsLoggedIn())

	res, err := app.Router.Go(ctx, "/utilisateurs")
	require.NoError(t, err)
	assert.Equal(t, "/login", res.Path)
	assert.Contains(t, notices.String(), "must log in first")

	_, err = app.Auth.Login(ctx, "root@x.io", "correct-horse")
	require.NoError(t, err)
	assert.True(t, app.Session.IsLoggedIn())
	assert.Equal(t, "/", app.Router.Current())
	stored, _ := storage.Raw(domainauth.TokenKey)
	assert.Equal(t, "tok-1", stored)

	res, err = app.Router.Go(ctx, "/utilisateurs")
	require.NoError(t, err)
	assert.Equal(t, "/utilisateurs", res.Path)

	_, err = app.Directory.ListNotes(ctx, noteOpts())
	require.NoError(t, err)

	revoked.Store(true)
	_, err = app.Directory.ListNotes(ctx, noteOpts())
	assert.True(t, apperrors.IsSessionExpired(err))
	assert.False(t, app.Session.IsLoggedIn())
	assert.Equal(t, "/login", app.Router.Current())
	_, ok := storage.Raw(domainauth.TokenKey)
	assert.False(t, ok)
}

func TestBuildApp_SessionSurvivesRebuild(t *testing.T) {
	var revoked atomic.Bool
	srv := fakeBackend(t, &revoked)
	storage := mockauth.NewMemoryStorage()
	ctx := context.Background()

	first, err := BuildApp(ctx, AppDeps{Config: testConfig(srv.URL), Logger: quietLogger(), Out: io.Discard, Storage: storage})
	require.NoError(t, err)
	_, err = first.Auth.Login(ctx, "root@x.io", "correct-horse")
	require.NoError(t, err)

	second, err := BuildApp(ctx, AppDeps{Config: testConfig(srv.URL), Logger: quietLogger(), Out: io.Discard, Storage: storage})
	require.NoError(t, err)
	assert.True(t, second.Session.IsLoggedIn())
	u, ok := second.Session.CurrentUser()
	require.True(t, ok)
	assert.True(t, u.IsAdmin())
}

func TestBuildApp_InvalidTokenPath(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Login.TokenPath = "a.["

	_, err := BuildApp(context.Background(), AppDeps{Config: cfg, Logger: quietLogger(), Out: io.Discard})
	assert.Error(t, err)
}

func noteOpts() model.NoteListOptions { return model.NoteListOptions{Page: 1} }
