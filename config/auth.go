package config

import (
	"path"
	"strings"
)

// AuthConfig groups route guard configuration.
type AuthConfig struct {
	// LoginPath is the view users are sent to when a session is missing or expired.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/login"`

	// HomePath is the view non-admin users are sent to from admin views.
	HomePath string `env:"AUTH_HOME_PATH" envDefault:"/"`

	// PublicPaths are reachable without a session.
	PublicPaths []string `env:"AUTH_PUBLIC_PATHS" envDefault:"/login;/activate;/forgot-password;/reset-password;/email-sent" envSeparator:";"`
}

// Sanitize normalizes view paths and drops empty public paths.
func (a *AuthConfig) Sanitize() {
	a.LoginPath = cleanViewPath(a.LoginPath, "/login")
	a.HomePath = cleanViewPath(a.HomePath, "/")

	public := make([]string, 0, len(a.PublicPaths))
	seen := make(map[string]struct{}, len(a.PublicPaths))
	for _, p := range a.PublicPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = cleanViewPath(p, "")
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		public = append(public, p)
	}
	a.PublicPaths = public
}

func cleanViewPath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return fallback
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
