// Package guard evaluates navigation-time gates.
//
// A Guard is an ordered list of Checks evaluated with short-circuit: the
// first Check that allows or denies ends the guard. Several guards on one
// route compose with AND semantics and the first denying guard decides
// the redirect.
//
// Guards read only cached client state and never perform I/O. They gate
// the UI; the backend still authorizes every privileged request.
package guard

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// Target is the navigation being evaluated.
type Target struct {
	// Path is the cleaned path without query string.
	Path  string
	Query url.Values
}

// ParseTarget splits raw into a cleaned path and query.
func ParseTarget(raw string) Target {
	p, rawQuery, _ := strings.Cut(raw, "?")
	q, _ := url.ParseQuery(rawQuery)
	return Target{Path: CleanPath(p), Query: q}
}

// CleanPath normalizes a view path: leading slash, no trailing slash,
// no dot segments.
func CleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Outcome is the result kind of a single Check.
type Outcome int

const (
	// Continue means the check has no objection; evaluation proceeds.
	Continue Outcome = iota
	// Allow permits the navigation and ends the guard.
	Allow
	// Deny cancels the navigation and ends the guard.
	Deny
)

// Verdict is the result of a single Check.
type Verdict struct {
	Outcome  Outcome
	Redirect string
	Message  string
}

// Pass returns a Continue verdict.
func Pass() Verdict { return Verdict{Outcome: Continue} }

// Permit returns an Allow verdict.
func Permit() Verdict { return Verdict{Outcome: Allow} }

// Reject returns a Deny verdict redirecting to redirect.
func Reject(redirect, message string) Verdict {
	return Verdict{Outcome: Deny, Redirect: redirect, Message: message}
}

// Check is one capability test.
type Check interface {
	Check(ctx context.Context, t Target) Verdict
}

// CheckFunc adapts a function to Check.
type CheckFunc func(ctx context.Context, t Target) Verdict

func (f CheckFunc) Check(ctx context.Context, t Target) Verdict { return f(ctx, t) }

// Guard is a named ordered list of checks.
type Guard struct {
	Name   string
	Checks []Check
}

// Decision is the overall result of evaluating one or more guards.
type Decision struct {
	Permitted bool
	// Guard names the denying guard.
	Guard    string
	Redirect string
	Message  string
}

// Evaluate runs the guard's checks in order. A guard whose checks all
// continue permits the navigation.
func (g Guard) Evaluate(ctx context.Context, t Target) Decision {
	for _, c := range g.Checks {
		v := c.Check(ctx, t)
		switch v.Outcome {
		case Allow:
			return Decision{Permitted: true}
		case Deny:
			return Decision{
				Guard:    g.Name,
				Redirect: v.Redirect,
				Message:  v.Message,
			}
		}
	}
	return Decision{Permitted: true}
}

// Evaluate composes guards with AND semantics. The first denying guard
// determines the redirect; later guards are not evaluated.
func Evaluate(ctx context.Context, t Target, guards ...Guard) Decision {
	for _, g := range guards {
		if d := g.Evaluate(ctx, t); !d.Permitted {
			return d
		}
	}
	return Decision{Permitted: true}
}
