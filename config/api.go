package config

import (
	"strings"
	"time"
)

const (
	defaultAPITimeout = 15 * time.Second
	maxAPITimeout     = 5 * time.Minute
)

// APIConfig contains backend API client configuration.
type APIConfig struct {
	// BaseURL is the root of the notes backend (e.g., "https://notes.example.com/api").
	BaseURL string `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000"`

	// Timeout bounds every backend request, including reading the body.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"notesctl"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimSpace(a.BaseURL)
	if a.BaseURL == "" {
		a.BaseURL = "http://127.0.0.1:8000"
	}
	a.UserAgent = strings.TrimSpace(a.UserAgent)

	// Clamp timeout to a sane range
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}
}

// LoginConfig controls how the login response is read and how often
// login may be attempted.
type LoginConfig struct {
	// Endpoint is the backend path of the form login.
	Endpoint string `env:"LOGIN_ENDPOINT" envDefault:"/login"`

	// TokenPath is a JMESPath expression selecting the bearer token.
	TokenPath string `env:"LOGIN_TOKEN_PATH" envDefault:"access_token"`

	// UserPath is a JMESPath expression selecting the user summary.
	// Leave empty when the backend does not return one.
	UserPath string `env:"LOGIN_USER_PATH" envDefault:"user"`

	// RateLimit is the sustained number of login attempts per second.
	// Zero disables throttling.
	RateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"0.2"`

	// RateBurst is the number of attempts allowed back to back.
	RateBurst int `env:"LOGIN_RATE_BURST" envDefault:"3"`
}

// Sanitize applies guardrails to login configuration values.
func (l *LoginConfig) Sanitize() {
	l.Endpoint = strings.TrimSpace(l.Endpoint)
	if l.Endpoint == "" {
		l.Endpoint = "/login"
	}
	l.TokenPath = strings.TrimSpace(l.TokenPath)
	if l.TokenPath == "" {
		l.TokenPath = "access_token"
	}
	l.UserPath = strings.TrimSpace(l.UserPath)
	if l.RateLimit < 0 {
		l.RateLimit = 0
	}
	if l.RateBurst < 1 {
		l.RateBurst = 1
	}
}
