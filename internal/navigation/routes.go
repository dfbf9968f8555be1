package navigation

import (
	"github.com/notesapp/notes-console/internal/guard"
)

// RouteConfig parameterizes the default route table.
type RouteConfig struct {
	LoginPath   string
	HomePath    string
	PublicPaths []string
}

// SessionState is what the default guards read: the cached login flag
// and user summary.
type SessionState interface {
	guard.LoginState
	guard.UserSource
}

// DefaultRoutes returns the notes console route table. Every route carries
// the auth guard (which lets public paths through); user management and
// student editing additionally require the admin role.
func DefaultRoutes(cfg RouteConfig, state SessionState) []Route {
	public := cfg.PublicPaths
	if len(public) == 0 {
		public = guard.DefaultPublicPaths
	}
	auth := guard.AuthGuard(public, state, cfg.LoginPath)
	admin := guard.AdminGuard(state, cfg.LoginPath, cfg.HomePath)

	authed := []guard.Guard{auth}
	adminOnly := []guard.Guard{auth, admin}

	return []Route{
		{Name: "login", Pattern: "/login", Guards: authed},
		{Name: "activate", Pattern: "/activate", Guards: authed},
		{Name: "forgot-password", Pattern: "/forgot-password", Guards: authed},
		{Name: "reset-password", Pattern: "/reset-password", Guards: authed},
		{Name: "email-sent", Pattern: "/email-sent", Guards: authed},

		{Name: "home", Pattern: "/", Guards: authed},
		{Name: "account", Pattern: "/account", Guards: authed},
		{Name: "notes", Pattern: "/notes", Guards: authed},
		{Name: "note-create", Pattern: "/notes/new", Guards: authed},
		{Name: "note-detail", Pattern: "/notes/:id", Guards: authed},
		{Name: "students", Pattern: "/eleves", Guards: authed},
		{Name: "student-create", Pattern: "/eleves/new", Guards: adminOnly},
		{Name: "student-edit", Pattern: "/eleves/:id/edit", Guards: adminOnly},
		{Name: "student-detail", Pattern: "/eleves/:id", Guards: authed},

		{Name: "users", Pattern: "/utilisateurs", Guards: adminOnly},
		{Name: "user-detail", Pattern: "/utilisateurs/:id", Guards: adminOnly},
	}
}
