package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/notesapp/notes-console/config"
	"github.com/notesapp/notes-console/internal/adapters/toast"
	"github.com/notesapp/notes-console/internal/client"
	"github.com/notesapp/notes-console/internal/navigation"
	"github.com/notesapp/notes-console/internal/ports"
	"github.com/notesapp/notes-console/internal/service"
	"github.com/notesapp/notes-console/internal/session"
	"github.com/notesapp/notes-console/internal/transport"
	"golang.org/x/time/rate"
)

// App holds the wired session triad and the services built on it.
type App struct {
	Config    config.AppConfig
	Logger    *slog.Logger
	Session   *session.TokenStore
	Router    *navigation.Router
	Notifier  ports.Notifier
	Client    *client.Client
	Auth      *service.AuthService
	Directory *service.DirectoryService
	Storage   StorageHandle
}

// AppDeps groups inputs for BuildApp.
type AppDeps struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Out receives user-visible notices. Defaults to stderr.
	Out io.Writer
	// Storage overrides the configured session storage (tests).
	Storage ports.SessionStorage
}

// BuildApp wires storage, token store, router, authenticator, API client
// and services, then loads the persisted session.
func BuildApp(ctx context.Context, deps AppDeps) (*App, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := deps.Out
	if out == nil {
		out = os.Stderr
	}

	handle := StorageHandle{Storage: deps.Storage, Backend: cfg.Storage.Backend, Close: func() error { return nil }}
	if handle.Storage == nil {
		var err error
		handle, err = BuildStorage(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("build session storage: %w", err)
		}
	}

	store := session.NewTokenStore(handle.Storage, session.WithLogger(logger))
	store.Load(ctx)

	notifier := toast.New(out, logger)
	router := navigation.NewRouter(
		navigation.DefaultRoutes(navigation.RouteConfig{
			LoginPath:   cfg.Auth.LoginPath,
			HomePath:    cfg.Auth.HomePath,
			PublicPaths: cfg.Auth.PublicPaths,
		}, store),
		navigation.WithNotifier(notifier),
		navigation.WithLogger(logger),
		navigation.WithFallback(cfg.Auth.HomePath),
	)

	authn := transport.NewAuthenticator(store, router,
		transport.WithLoginPath(cfg.Auth.LoginPath),
		transport.WithAuthLogger(logger),
	)

	api, err := client.New(client.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		UserAgent:  cfg.API.UserAgent,
		Logger:     logger,
		Middleware: []transport.Middleware{authn},
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("build api client: %w", err), handle.Close())
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Deps: service.AuthDeps{API: api, Session: store, Navigator: router},
		Login: service.LoginConfig{
			Endpoint:  cfg.Login.Endpoint,
			TokenPath: cfg.Login.TokenPath,
			UserPath:  cfg.Login.UserPath,
			LoginView: cfg.Auth.LoginPath,
			HomeView:  cfg.Auth.HomePath,
			RateLimit: rate.Limit(cfg.Login.RateLimit),
			Burst:     cfg.Login.RateBurst,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("build auth service: %w", err), handle.Close())
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Session:   store,
		Router:    router,
		Notifier:  notifier,
		Client:    api,
		Auth:      authSvc,
		Directory: service.NewDirectoryService(service.DirectoryServiceOptions{API: api, Logger: logger}),
		Storage:   handle,
	}, nil
}

// Close releases the session storage.
func (a *App) Close() error {
	if a == nil || a.Storage.Close == nil {
		return nil
	}
	return a.Storage.Close()
}
