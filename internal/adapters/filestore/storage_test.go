package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	domainauth "github.com/notesapp/notes-console/internal/domain/auth"
	"github.com/notesapp/notes-console/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "session.json"))
	require.NoError(t, err)
	return s
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestStorage_MissingFileIsEmpty(t *testing.T) {
	s := newTestStorage(t)

	_, ok, err := s.Get(context.Background(), domainauth.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Remove(context.Background(), domainauth.TokenKey))
}

func TestStorage_SetGetRemove(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, domainauth.TokenKey, "abc"))
	require.NoError(t, s.Set(ctx, domainauth.UserKey, `{"id":1}`))

	v, ok, err := s.Get(ctx, domainauth.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Remove(ctx, domainauth.TokenKey))
	_, ok, err = s.Get(ctx, domainauth.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get(ctx, domainauth.UserKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)
}

func TestStorage_CorruptFileReportsError(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, _, err := s.Get(context.Background(), domainauth.TokenKey)
	assert.Error(t, err)
}

func TestStorage_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := New(path)
	require.NoError(t, err)
	store := session.NewTokenStore(first)
	store.Load(ctx)
	require.NoError(t, store.SetToken(ctx, "abc"))
	require.NoError(t, store.SetUser(ctx, domainauth.UserSummary{ID: 2, Name: "Zoé", Role: domainauth.RoleAdmin}))

	second, err := New(path)
	require.NoError(t, err)
	reloaded := session.NewTokenStore(second)
	reloaded.Load(ctx)

	assert.True(t, reloaded.IsLoggedIn())
	u, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Zoé", u.Name)
	assert.True(t, u.IsAdmin())
}
