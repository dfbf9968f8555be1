package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/notesapp/notes-console/internal/ports"
	"golang.org/x/oauth2"
)

// SessionTokens is what the authenticator needs from the token store.
type SessionTokens interface {
	GetToken(ctx context.Context) (string, bool)
	ClearSession(ctx context.Context) error
}

// AuthenticatorOption configures NewAuthenticator.
type AuthenticatorOption func(*authenticator)

// WithLoginPath sets the view navigated to on 401. Default "/login".
func WithLoginPath(p string) AuthenticatorOption {
	return func(a *authenticator) {
		if p != "" {
			a.loginPath = p
		}
	}
}

// WithAuthLogger sets the logger for session-expiry events.
func WithAuthLogger(l *slog.Logger) AuthenticatorOption {
	return func(a *authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

type authenticator struct {
	tokens    SessionTokens
	nav       ports.Navigator
	loginPath string
	logger    *slog.Logger
}

// NewAuthenticator returns middleware that attaches the bearer token and
// reacts to 401 responses.
//
// Requests without a token pass through unmodified; gating is the
// navigator's job. On 401 the session is cleared and the navigator is
// sent to the login view before the response is handed back, so callers
// inspecting the failure already observe a logged-out state. The
// response itself is never swallowed or rewritten. It holds no
// per-request state and is safe for concurrent use.
func NewAuthenticator(tokens SessionTokens, nav ports.Navigator, opts ...AuthenticatorOption) Middleware {
	a := &authenticator{
		tokens:    tokens,
		nav:       nav,
		loginPath: "/login",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return a.roundTrip(next, r)
		})
	}
}

func (a *authenticator) roundTrip(next http.RoundTripper, r *http.Request) (*http.Response, error) {
	out := r
	if tok, ok := a.tokens.GetToken(r.Context()); ok {
		out = r.Clone(r.Context())
		(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(out)
	}

	resp, err := next.RoundTrip(out)
	if err != nil || resp == nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		a.expire(r)
	}
	return resp, nil
}

// expire clears the session and redirects to login. It runs detached from
// request cancellation so a canceled caller still logs out.
func (a *authenticator) expire(r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	a.logger.WarnContext(ctx, "session rejected by server; logging out",
		"method", r.Method,
		"path", r.URL.Path)

	if err := a.tokens.ClearSession(ctx); err != nil {
		a.logger.WarnContext(ctx, "clear session after 401", "error", err)
	}
	if a.nav == nil {
		return
	}
	if err := a.nav.Navigate(ctx, a.loginPath); err != nil {
		a.logger.WarnContext(ctx, "redirect to login after 401", "error", err)
	}
}
