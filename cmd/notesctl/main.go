package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/notesapp/notes-console/internal/bootstrap"
	apperrors "github.com/notesapp/notes-console/internal/errors"
	"github.com/notesapp/notes-console/internal/ports"
)

type commandFn func(cmdCtx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	App    *bootstrap.App
	Out    io.Writer
	Err    io.Writer
	In     *bufio.Reader
}

// stdio groups the streams a command invocation reads and writes.
type stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate command status to the shell
}

func run(ctx context.Context, args []string, std stdio) int {
	if len(args) < 1 {
		_ = printUsage(std.Out)
		return 2
	}

	cmdName := args[0]
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(std.Err, "unknown command %q\n\n", cmdName)
		_ = printUsage(std.Err)
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(std.Err, "load config: %v\n", err)
		return 1
	}
	logger := bootstrap.InitLogger(cfg.Observability, std.Err)

	app, err := bootstrap.BuildApp(ctx, bootstrap.AppDeps{Config: cfg, Logger: logger, Out: std.Err})
	if err != nil {
		logger.ErrorContext(ctx, "startup failed", "error", err)
		_ = writef(std.Err, "error: %v\n", err)
		return 1
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.WarnContext(ctx, "close session storage", "error", closeErr)
		}
	}()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		App:    app,
		Out:    std.Out,
		Err:    std.Err,
		In:     bufio.NewReader(std.In),
	}
	if runErr := cmd.run(cmdCtx, args[1:]); runErr != nil {
		logger.DebugContext(ctx, "command failed", "command", cmdName, "error", runErr)
		_ = writef(std.Err, "error: %s\n", userMessage(runErr))
		return 1
	}
	return 0
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in and persist the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Clear the persisted session",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Show the current session and token expiry",
			run:         runStatus,
		},
		"open": {
			name:        "open",
			description: "Navigate to a view path and report where the guards land",
			run:         runOpen,
		},
		"notes": {
			name:        "notes",
			description: "List notes, or show one with --id",
			run:         runNotes,
		},
		"users": {
			name:        "users",
			description: "List users, or show one with --id (admin)",
			run:         runUsers,
		},
		"students": {
			name:        "students",
			description: "List, filter and page students, or show one with --id",
			run:         runStudents,
		},
		"dashboard": {
			name:        "dashboard",
			description: "Show note, user and student totals",
			run:         runDashboard,
		},
		"forgot-password": {
			name:        "forgot-password",
			description: "Request a password reset email",
			run:         runForgotPassword,
		},
		"reset-password": {
			name:        "reset-password",
			description: "Set a new password with a reset token",
			run:         runResetPassword,
		},
		"activate": {
			name:        "activate",
			description: "Activate an account with the emailed token",
			run:         runActivate,
		},
		"resend-activation": {
			name:        "resend-activation",
			description: "Request a new activation email",
			run:         runResendActivation,
		},
		"change-password": {
			name:        "change-password",
			description: "Change your own password",
			run:         runChangePassword,
		},
		"admin-change-password": {
			name:        "admin-change-password",
			description: "Set another user's password (admin)",
			run:         runAdminChangePassword,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: notesctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := writef(w, "  %-24s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// enterView runs the route guards for path. A denied navigation has
// already been announced by the notifier and is reported as an error.
func (c *commandContext) enterView(path string) error {
	res, err := c.App.Router.Go(c.Ctx, path)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", path, err)
	}
	if res.Redirected {
		return fmt.Errorf("%s is not available; redirected to %s", path, res.Path)
	}
	return nil
}

func (c *commandContext) notify(level ports.NoticeLevel, format string, args ...any) {
	c.App.Notifier.Notify(c.Ctx, ports.Notice{Level: level, Message: fmt.Sprintf(format, args...)})
}

// readSecret returns flagValue, or the next line of stdin when it is empty.
func (c *commandContext) readSecret(flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if err := writef(c.Err, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := c.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(prompt), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
