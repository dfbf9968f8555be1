// Package navigation resolves view paths against a guarded route table.
// It is the client's navigator: guards run before a navigation commits,
// denials redirect (with a user-visible notice) and the committed path
// becomes current.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/notesapp/notes-console/internal/guard"
	"github.com/notesapp/notes-console/internal/ports"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNoRoute is returned when no route matches and no fallback is set.
	ErrNoRoute = errors.New("no route matches path")
	// ErrRedirectLoop is returned when guards keep redirecting.
	ErrRedirectLoop = errors.New("too many redirects")
)

const defaultMaxRedirects = 5

// Route maps a path pattern to a view and the guards protecting it.
// Patterns are slash-separated; a ":name" segment matches any single
// segment and captures it.
type Route struct {
	Name    string
	Pattern string
	Guards  []guard.Guard
}

type compiledRoute struct {
	Route
	segments []string
}

// Result describes a committed navigation.
type Result struct {
	Requested  string
	Path       string
	Route      string
	Params     map[string]string
	Redirected bool
	// Denials lists every guard decision that caused a redirect.
	Denials []guard.Decision
	// NoOp is set when the target was already current.
	NoOp bool
}

// Option configures a Router.
type Option func(*Router)

// WithNotifier sets where deny messages are surfaced.
func WithNotifier(n ports.Notifier) Option {
	return func(r *Router) { r.notifier = n }
}

// WithLogger sets the router logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFallback redirects unmatched paths to path.
func WithFallback(path string) Option {
	return func(r *Router) { r.fallback = guard.CleanPath(path) }
}

// WithMaxRedirects bounds the redirect chain.
func WithMaxRedirects(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.maxRedirects = n
		}
	}
}

// Router is a guarded navigator. It is safe for concurrent use;
// concurrent navigations to the same target are coalesced.
type Router struct {
	routes       []compiledRoute
	notifier     ports.Notifier
	logger       *slog.Logger
	fallback     string
	maxRedirects int

	group singleflight.Group

	mu      sync.RWMutex
	current string
}

var _ ports.Navigator = (*Router)(nil)

// NewRouter builds a router over routes. The first matching route wins.
func NewRouter(routes []Route, opts ...Option) *Router {
	r := &Router{
		logger:       slog.Default(),
		maxRedirects: defaultMaxRedirects,
	}
	for _, rt := range routes {
		r.routes = append(r.routes, compiledRoute{
			Route:    rt,
			segments: splitPath(guard.CleanPath(rt.Pattern)),
		})
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the committed path, including its query string.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate implements ports.Navigator.
func (r *Router) Navigate(ctx context.Context, path string) error {
	_, err := r.Go(ctx, path)
	return err
}

// Go evaluates guards for raw and commits the resulting path.
// Navigating to the already-current path is a no-op.
func (r *Router) Go(ctx context.Context, raw string) (Result, error) {
	key := normalizeRaw(raw)
	if key == r.Current() {
		return Result{Requested: raw, Path: key, NoOp: true}, nil
	}

	// The result is shared with coalesced callers, so it must not depend on
	// the first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, coalesced := r.group.Do(key, func() (any, error) {
		return r.resolve(shared, key)
	})
	if err != nil {
		return Result{Requested: raw}, err
	}
	res := v.(Result)
	res.Requested = raw
	if coalesced {
		r.logger.DebugContext(ctx, "navigation coalesced", "path", res.Path)
	}
	return res, nil
}

func (r *Router) resolve(ctx context.Context, raw string) (Result, error) {
	res := Result{}
	next := raw

	for hop := 0; hop <= r.maxRedirects; hop++ {
		target := guard.ParseTarget(next)

		route, params, ok := r.match(target.Path)
		if !ok {
			if r.fallback == "" || target.Path == r.fallback {
				return res, fmt.Errorf("%w: %s", ErrNoRoute, target.Path)
			}
			r.logger.DebugContext(ctx, "unknown path, using fallback", "path", target.Path, "fallback", r.fallback)
			next = r.fallback
			res.Redirected = true
			continue
		}

		d := guard.Evaluate(ctx, target, route.Guards...)
		if !d.Permitted {
			r.logger.InfoContext(ctx, "navigation denied",
				"path", target.Path,
				"guard", d.Guard,
				"redirect", d.Redirect)
			res.Denials = append(res.Denials, d)
			res.Redirected = true
			r.notify(ctx, d)

			redirect := normalizeRaw(d.Redirect)
			if d.Redirect == "" || guard.ParseTarget(redirect).Path == target.Path {
				return res, fmt.Errorf("%w: guard %q denied %s without a different redirect", ErrRedirectLoop, d.Guard, target.Path)
			}
			next = redirect
			continue
		}

		r.mu.Lock()
		r.current = next
		r.mu.Unlock()

		res.Path = next
		res.Route = route.Name
		res.Params = params
		return res, nil
	}

	return res, fmt.Errorf("%w: stopped after %d redirects from %s", ErrRedirectLoop, r.maxRedirects, raw)
}

func (r *Router) notify(ctx context.Context, d guard.Decision) {
	if r.notifier == nil || d.Message == "" {
		return
	}
	r.notifier.Notify(ctx, ports.Notice{Level: ports.NoticeError, Message: d.Message})
}

func (r *Router) match(p string) (compiledRoute, map[string]string, bool) {
	segs := splitPath(p)
	for _, rt := range r.routes {
		if params, ok := matchSegments(rt.segments, segs); ok {
			return rt, params, true
		}
	}
	return compiledRoute{}, nil, false
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, ps := range pattern {
		if name, ok := strings.CutPrefix(ps, ":"); ok {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = segs[i]
			continue
		}
		if ps != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// normalizeRaw cleans the path part and keeps the query string.
func normalizeRaw(raw string) string {
	p, q, hasQuery := strings.Cut(raw, "?")
	p = guard.CleanPath(p)
	if hasQuery && q != "" {
		return p + "?" + q
	}
	return p
}
