package guard

import (
	"context"

	domainauth "github.com/notesapp/notes-console/internal/domain/auth"
)

// User-visible denial messages.
const (
	MsgLoginRequired = "must log in first"
	MsgAdminsOnly    = "admins only"
)

// DefaultPublicPaths are reachable without a session.
var DefaultPublicPaths = []string{
	"/login",
	"/activate",
	"/forgot-password",
	"/reset-password",
	"/email-sent",
}

// LoginState reports the cached login flag.
type LoginState interface {
	IsLoggedIn() bool
}

// UserSource returns the cached user summary.
type UserSource interface {
	CurrentUser() (domainauth.UserSummary, bool)
}

// PublicPathCheck allows navigation to a fixed set of paths.
type PublicPathCheck struct {
	paths map[string]struct{}
}

// NewPublicPathCheck builds a PublicPathCheck. Paths are cleaned.
func NewPublicPathCheck(paths ...string) PublicPathCheck {
	m := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		m[CleanPath(p)] = struct{}{}
	}
	return PublicPathCheck{paths: m}
}

func (c PublicPathCheck) Check(_ context.Context, t Target) Verdict {
	if _, ok := c.paths[t.Path]; ok {
		return Permit()
	}
	return Pass()
}

// LoggedInCheck denies when no session is held.
type LoggedInCheck struct {
	State    LoginState
	Redirect string
	Message  string
}

func (c LoggedInCheck) Check(_ context.Context, _ Target) Verdict {
	if c.State != nil && c.State.IsLoggedIn() {
		return Pass()
	}
	return Reject(c.Redirect, c.Message)
}

// UserPresentCheck denies when no user summary is cached.
type UserPresentCheck struct {
	Users    UserSource
	Redirect string
	Message  string
}

func (c UserPresentCheck) Check(_ context.Context, _ Target) Verdict {
	if c.Users != nil {
		if _, ok := c.Users.CurrentUser(); ok {
			return Pass()
		}
	}
	return Reject(c.Redirect, c.Message)
}

// RoleCheck denies when the cached user does not satisfy Role.
type RoleCheck struct {
	Users    UserSource
	Role     domainauth.Role
	Redirect string
	Message  string
}

func (c RoleCheck) Check(_ context.Context, _ Target) Verdict {
	if c.Users == nil {
		return Reject(c.Redirect, c.Message)
	}
	u, ok := c.Users.CurrentUser()
	if !ok || !u.Role.Satisfies(c.Role) {
		return Reject(c.Redirect, c.Message)
	}
	return Pass()
}

// AuthGuard permits public paths unconditionally and everything else only
// with a session.
func AuthGuard(publicPaths []string, state LoginState, loginPath string) Guard {
	return Guard{
		Name: "auth",
		Checks: []Check{
			NewPublicPathCheck(publicPaths...),
			LoggedInCheck{State: state, Redirect: loginPath, Message: MsgLoginRequired},
		},
	}
}

// AdminGuard requires a cached user with the admin role. Missing users go
// to loginPath, non-admins to homePath.
func AdminGuard(users UserSource, loginPath, homePath string) Guard {
	return Guard{
		Name: "admin",
		Checks: []Check{
			UserPresentCheck{Users: users, Redirect: loginPath, Message: MsgLoginRequired},
			RoleCheck{Users: users, Role: domainauth.RoleAdmin, Redirect: homePath, Message: MsgAdminsOnly},
		},
	}
}
