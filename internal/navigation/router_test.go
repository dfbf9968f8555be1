package navigation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domainauth "github.com/notesapp/notes-console/internal/domain/auth"
	"github.com/notesapp/notes-console/internal/guard"
	"github.com/notesapp/notes-console/internal/mocks"
	mockauth "github.com/notesapp/notes-console/internal/mocks/auth"
	"github.com/notesapp/notes-console/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubState struct {
	mu       sync.Mutex
	loggedIn bool
	user     *domainauth.UserSummary
}

func (s *stubState) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *stubState) CurrentUser() (domainauth.UserSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domainauth.UserSummary{}, false
	}
	return *s.user, true
}

func newTestRouter(state *stubState, notifier ports.Notifier) *Router {
	cfg := RouteConfig{LoginPath: "/login", HomePath: "/"}
	return NewRouter(DefaultRoutes(cfg, state), WithNotifier(notifier), WithFallback("/"))
}

func TestRouter_LoggedOutRedirectsToLogin(t *testing.T) {
	notifier := &mockauth.RecordingNotifier{}
	r := newTestRouter(&stubState{}, notifier)

	res, err := r.Go(context.Background(), "/notes")
	require.NoError(t, err)

	assert.Equal(t, "/login", res.Path)
	assert.Equal(t, "login", res.Route)
	assert.True(t, res.Redirected)
	require.Len(t, res.Denials, 1)
	assert.Equal(t, "auth", res.Denials[0].Guard)
	assert.Equal(t, "/login", r.Current())
}

func TestRouter_PublicPathWithQuery(t *testing.T) {
	r := newTestRouter(&stubState{}, nil)

	res, err := r.Go(context.Background(), "/reset-password?token=abc")
	require.NoError(t, err)

	assert.Equal(t, "/reset-password?token=abc", res.Path)
	assert.False(t, res.Redirected)
}

func TestRouter_MemberOnAdminRouteGoesHome(t *testing.T) {
	state := &stubState{loggedIn: true, user: &domainauth.UserSummary{ID: 1, Role: domainauth.RoleMember}}
	notifier := &mockauth.RecordingNotifier{}
	r := newTestRouter(state, notifier)

	res, err := r.Go(context.Background(), "/utilisateurs/4")
	require.NoError(t, err)

	assert.Equal(t, "/", res.Path)
	assert.Equal(t, "home", res.Route)
	require.Len(t, notifier.Notices(), 1)
	assert.Equal(t, ports.Notice{Level: ports.NoticeError, Message: guard.MsgAdminsOnly}, notifier.Notices()[0])
}

func TestRouter_AdminRouteParams(t *testing.T) {
	state := &stubState{loggedIn: true, user: &domainauth.UserSummary{ID: 1, Role: domainauth.RoleAdmin}}
	r := newTestRouter(state, nil)

	res, err := r.Go(context.Background(), "/eleves/12/edit")
	require.NoError(t, err)

	assert.Equal(t, "student-edit", res.Route)
	assert.Equal(t, map[string]string{"id": "12"}, res.Params)
}

func TestRouter_StaticSegmentBeatsParam(t *testing.T) {
	state := &stubState{loggedIn: true, user: &domainauth.UserSummary{ID: 1, Role: domainauth.RoleAdmin}}
	r := newTestRouter(state, nil)

	res, err := r.Go(context.Background(), "/eleves/new")
	require.NoError(t, err)
	assert.Equal(t, "student-create", res.Route)
}

func TestRouter_UnknownPathFallsBack(t *testing.T) {
	state := &stubState{loggedIn: true}
	r := newTestRouter(state, nil)

	res, err := r.Go(context.Background(), "/does/not/exist")
	require.NoError(t, err)
	assert.Equal(t, "/", res.Path)
	assert.True(t, res.Redirected)
}

func TestRouter_UnknownPathWithoutFallback(t *testing.T) {
	r := NewRouter(nil)

	_, err := r.Go(context.Background(), "/x")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestRouter_CurrentPathIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1)

	r := newTestRouter(&stubState{}, notifier)
	ctx := context.Background()

	_, err := r.Go(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, "/login", r.Current())

	res, err := r.Go(ctx, "/login")
	require.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.NoError(t, r.Navigate(ctx, "/login/"))
}

func TestRouter_RedirectLoop(t *testing.T) {
	deny := guard.Guard{Name: "loop", Checks: []guard.Check{guard.CheckFunc(func(_ context.Context, t guard.Target) guard.Verdict {
		if t.Path == "/a" {
			return guard.Reject("/b", "")
		}
		return guard.Reject("/a", "")
	})}}
	r := NewRouter([]Route{
		{Name: "a", Pattern: "/a", Guards: []guard.Guard{deny}},
		{Name: "b", Pattern: "/b", Guards: []guard.Guard{deny}},
	}, WithMaxRedirects(3))

	_, err := r.Go(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrRedirectLoop)
	assert.Equal(t, "", r.Current())
}

func TestRouter_SelfRedirectIsLoop(t *testing.T) {
	self := guard.Guard{Name: "self", Checks: []guard.Check{guard.CheckFunc(func(context.Context, guard.Target) guard.Verdict {
		return guard.Reject("/a", "")
	})}}
	r := NewRouter([]Route{{Name: "a", Pattern: "/a", Guards: []guard.Guard{self}}})

	_, err := r.Go(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrRedirectLoop)
}

func TestRouter_ConcurrentNavigationsCoalesce(t *testing.T) {
	var evaluations atomic.Int32
	release := make(chan struct{})
	slow := guard.Guard{Name: "slow", Checks: []guard.Check{guard.CheckFunc(func(context.Context, guard.Target) guard.Verdict {
		evaluations.Add(1)
		<-release
		return guard.Pass()
	})}}
	r := NewRouter([]Route{{Name: "login", Pattern: "/login", Guards: []guard.Guard{slow}}})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Navigate(context.Background(), "/login"))
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, "/login", r.Current())
	assert.LessOrEqual(t, evaluations.Load(), int32(5))
	assert.GreaterOrEqual(t, evaluations.Load(), int32(1))
}

func TestRouter_GuardsIgnoreCallerCancellation(t *testing.T) {
	ctxAware := guard.Guard{
		Name: "ctx",
		Checks: []guard.Check{guard.CheckFunc(func(ctx context.Context, _ guard.Target) guard.Verdict {
			if ctx.Err() != nil {
				return guard.Reject("/login", "canceled")
			}
			return guard.Pass()
		})},
	}
	r := NewRouter([]Route{
		{Name: "login", Pattern: "/login"},
		{Name: "reports", Pattern: "/reports", Guards: []guard.Guard{ctxAware}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Go(ctx, "/reports")
	require.NoError(t, err)
	assert.Equal(t, "/reports", res.Path)
	assert.False(t, res.Redirected)
}
