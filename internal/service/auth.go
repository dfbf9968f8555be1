package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/notesapp/notes-console/internal/domain/auth"
	apperrors "github.com/notesapp/notes-console/internal/errors"
	"github.com/notesapp/notes-console/internal/ports"
	"github.com/notesapp/notes-console/internal/session"
	"golang.org/x/time/rate"
)

const minPasswordLen = 8

// ErrAccountNotActivated is returned by Login when the backend reports that
// the account exists but has not been activated yet.
var ErrAccountNotActivated = errors.New("account not activated")

// notActivatedMarkers are substrings the backend uses for inactive accounts.
var notActivatedMarkers = []string{"not activated", "pas encore activé"}

// SessionManager is the subset of the token store used by AuthService.
type SessionManager interface {
	SetToken(ctx context.Context, token string) error
	SetUser(ctx context.Context, user domainauth.UserSummary) error
	ClearUser(ctx context.Context) error
	ClearSession(ctx context.Context) error
}

// AuthDeps groups the collaborators AuthService needs.
type AuthDeps struct {
	API       ports.APIClient // Required
	Session   SessionManager  // Required
	Navigator ports.Navigator // Optional: skipped when nil
}

// LoginConfig controls how the login response is interpreted and where the
// user lands afterwards.
type LoginConfig struct {
	// Endpoint is the backend login path. Defaults to "/login".
	Endpoint string
	// TokenPath and UserPath are JMESPath expressions evaluated against the
	// login response. UserPath may be empty to skip user extraction.
	TokenPath string
	UserPath  string
	// LoginView and HomeView are navigation targets after logout and login.
	LoginView string
	HomeView  string
	// RateLimit is login attempts per second; zero disables throttling.
	RateLimit rate.Limit
	Burst     int
}

// DefaultLoginConfig matches the backend's login response shape.
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{
		Endpoint:  "/login",
		TokenPath: "access_token",
		UserPath:  "user",
		LoginView: "/login",
		HomeView:  "/",
	}
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Deps   AuthDeps
	Login  LoginConfig
	Logger *slog.Logger // Optional
}

// AuthService runs login, logout and the account maintenance flows.
type AuthService struct {
	api     ports.APIClient
	session SessionManager
	nav     ports.Navigator
	cfg     LoginConfig
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewAuthService constructs an AuthService. It fails when the JMESPath
// expressions in the login config do not compile.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Deps.API == nil {
		panic("AuthService requires an API client")
	}
	if opts.Deps.Session == nil {
		panic("AuthService requires a session manager")
	}

	cfg := withLoginDefaults(opts.Login)
	if _, err := jmespath.Compile(cfg.TokenPath); err != nil {
		return nil, fmt.Errorf("compile token path %q: %w", cfg.TokenPath, err)
	}
	if cfg.UserPath != "" {
		if _, err := jmespath.Compile(cfg.UserPath); err != nil {
			return nil, fmt.Errorf("compile user path %q: %w", cfg.UserPath, err)
		}
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		api:     opts.Deps.API,
		session: opts.Deps.Session,
		nav:     opts.Deps.Navigator,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With("component", "auth_service"),
	}, nil
}

func withLoginDefaults(cfg LoginConfig) LoginConfig {
	def := DefaultLoginConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if strings.TrimSpace(cfg.TokenPath) == "" {
		cfg.TokenPath = def.TokenPath
	}
	if cfg.LoginView == "" {
		cfg.LoginView = def.LoginView
	}
	if cfg.HomeView == "" {
		cfg.HomeView = def.HomeView
	}
	return cfg
}

// LoginResult is the session established by Login.
type LoginResult struct {
	Session domainauth.Session
}

// Login exchanges credentials for a bearer token and persists the session.
//
// When the session could only be kept in memory, Login returns both a
// non-nil result and an error matching session.ErrStorageUnavailable; the
// caller is logged in for the lifetime of the process.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.ValidationField("username", "email is required")
	}
	if password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}
	if !s.limiter.Allow() {
		return nil, apperrors.RateLimited("Too many login attempts. Please wait and try again.")
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp any
	if err := s.api.PostForm(ctx, s.cfg.Endpoint, form, &resp); err != nil {
		return nil, s.loginError(err)
	}

	token, err := s.extractToken(resp)
	if err != nil {
		return nil, err
	}
	user, err := s.extractUser(resp)
	if err != nil {
		s.logger.WarnContext(ctx, "login response user ignored", "error", err)
	}

	result := &LoginResult{Session: domainauth.Session{Token: token, User: user}}

	var warn error
	if err := s.session.SetToken(ctx, token); err != nil {
		if !errors.Is(err, session.ErrStorageUnavailable) {
			return nil, fmt.Errorf("store token: %w", err)
		}
		warn = err
	}
	// A response without a user must not inherit the previous session's.
	if user != nil {
		err = s.session.SetUser(ctx, *user)
	} else {
		err = s.session.ClearUser(ctx)
	}
	if err != nil {
		if !errors.Is(err, session.ErrStorageUnavailable) {
			return nil, fmt.Errorf("store user: %w", err)
		}
		warn = err
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", userID(user), "memory_only", warn != nil)
	s.navigate(ctx, s.cfg.HomeView)
	return result, warn
}

func (s *AuthService) loginError(err error) error {
	msg := apperrors.Detail(err)
	if msg == "" {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
	}
	lower := strings.ToLower(msg)
	for _, marker := range notActivatedMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: %w", ErrAccountNotActivated, err)
		}
	}
	if apperrors.IsSessionExpired(err) {
		if msg == "" {
			msg = "Invalid email or password."
		}
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, msg)
	}
	return err
}

func (s *AuthService) extractToken(resp any) (string, error) {
	v, err := jmespath.Search(s.cfg.TokenPath, resp)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "evaluate token path")
	}
	token, ok := v.(string)
	if !ok || strings.TrimSpace(token) == "" {
		return "", apperrors.Internal("login response did not contain a token")
	}
	return token, nil
}

func (s *AuthService) extractUser(resp any) (*domainauth.UserSummary, error) {
	if s.cfg.UserPath == "" {
		return nil, nil
	}
	v, err := jmespath.Search(s.cfg.UserPath, resp)
	if err != nil {
		return nil, fmt.Errorf("evaluate user path: %w", err)
	}
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	var user domainauth.UserSummary
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user.Role = user.Role.Normalize()
	return &user, nil
}

// Logout clears the session and returns to the login view. The navigation
// happens even when the stored session could not be removed.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.session.ClearSession(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "clear session failed", "error", err)
	}
	s.navigate(ctx, s.cfg.LoginView)
	return err
}

func (s *AuthService) navigate(ctx context.Context, path string) {
	if s.nav == nil {
		return
	}
	if err := s.nav.Navigate(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "navigation failed", "path", path, "error", err)
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type adminChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ResendActivation asks the backend to send a new activation link.
func (s *AuthService) ResendActivation(ctx context.Context, email string) (string, error) {
	email, err := validEmail(email)
	if err != nil {
		return "", err
	}
	var out messageResponse
	if err := s.api.PostJSON(ctx, "/auth/resend-activation", emailRequest{Email: email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ForgotPassword asks the backend to email a password reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email, err := validEmail(email)
	if err != nil {
		return "", err
	}
	var out messageResponse
	if err := s.api.PostJSON(ctx, "/auth/forgot-password", emailRequest{Email: email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ResetPassword sets a new password using a reset token. The backend also
// activates the account.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ValidationField("token", "reset token is required")
	}
	if newPassword == "" {
		return "", apperrors.ValidationField("new_password", "new password is required")
	}
	var out messageResponse
	req := resetPasswordRequest{Token: token, NewPassword: newPassword}
	if err := s.api.PostJSON(ctx, "/auth/reset-password", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Activate confirms an account with the token from the activation email.
func (s *AuthService) Activate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ValidationField("token", "activation token is required")
	}
	var out messageResponse
	if err := s.api.GetJSON(ctx, "/auth/activate", url.Values{"token": {token}}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ChangePassword changes the logged-in user's password.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error) {
	if oldPassword == "" {
		return "", apperrors.ValidationField("old_password", "current password is required")
	}
	if err := validNewPassword(newPassword); err != nil {
		return "", err
	}
	if oldPassword == newPassword {
		return "", apperrors.ValidationField("new_password", "new password must differ from the current one")
	}
	var out messageResponse
	req := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := s.api.PatchJSON(ctx, "/auth/change-password", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// AdminChangePassword sets another user's password. The backend rejects
// non-admin callers with 403.
func (s *AuthService) AdminChangePassword(ctx context.Context, userID int64, newPassword string) (string, error) {
	if userID <= 0 {
		return "", apperrors.ValidationField("user_id", "user id must be positive")
	}
	if err := validNewPassword(newPassword); err != nil {
		return "", err
	}
	var out messageResponse
	path := "/auth/admin/change-password/" + strconv.FormatInt(userID, 10)
	if err := s.api.PatchJSON(ctx, path, adminChangePasswordRequest{NewPassword: newPassword}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func validEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperrors.ValidationField("email", "email is required")
	}
	if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		return "", apperrors.ValidationField("email", "email is not valid")
	}
	return email, nil
}

func validNewPassword(pw string) error {
	if len([]rune(pw)) < minPasswordLen {
		return apperrors.ValidationField("new_password",
			fmt.Sprintf("new password must be at least %d characters", minPasswordLen))
	}
	return nil
}

func userID(u *domainauth.UserSummary) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
