package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/notesapp/notes-console/internal/ports"
	"github.com/notesapp/notes-console/internal/service"
	"github.com/notesapp/notes-console/internal/session"
	"github.com/notesapp/notes-console/internal/tokeninfo"
)

type loginOptions struct {
	Email    string
	Password string
}

func parseLoginFlags(cmdCtx *commandContext, args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var opts loginOptions
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}

	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Email == "" && fs.NArg() > 0 {
		opts.Email = fs.Arg(0)
	}
	if opts.Email == "" {
		return loginOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	password, err := cmdCtx.readSecret(opts.Password, "Password")
	if err != nil {
		return err
	}

	res, err := cmdCtx.App.Auth.Login(cmdCtx.Ctx, opts.Email, password)
	switch {
	case errors.Is(err, service.ErrAccountNotActivated):
		cmdCtx.notify(ports.NoticeWarning, "Your account is not activated. Check your email or run resend-activation.")
		return err
	case errors.Is(err, session.ErrStorageUnavailable) && res != nil:
		cmdCtx.notify(ports.NoticeWarning, "Logged in, but the session could not be saved and ends with this command.")
	case err != nil:
		return err
	}

	name := opts.Email
	if u := res.Session.User; u != nil && u.Name != "" {
		name = u.Name
	}
	cmdCtx.notify(ports.NoticeSuccess, "Logged in as %s", name)
	return nil
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	if err := cmdCtx.App.Auth.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeInfo, "Logged out")
	return nil
}

func runStatus(cmdCtx *commandContext, _ []string) error {
	store := cmdCtx.App.Session
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)

	if err := writef(tw, "Backend:\t%s\n", cmdCtx.App.Client.BaseURL()); err != nil {
		return err
	}
	if err := writef(tw, "Storage:\t%s\n", cmdCtx.App.Storage.Backend); err != nil {
		return err
	}
	if !store.IsLoggedIn() {
		if err := writef(tw, "Session:\tlogged out\n"); err != nil {
			return err
		}
		return tw.Flush()
	}
	if err := writef(tw, "Session:\tlogged in\n"); err != nil {
		return err
	}

	if u, ok := store.CurrentUser(); ok {
		if err := writef(tw, "User:\t%s <%s> (id %d)\n", u.Name, u.Email, u.ID); err != nil {
			return err
		}
		if err := writef(tw, "Role:\t%s\n", displayRole(string(u.Role))); err != nil {
			return err
		}
	}

	if err := writeTokenStatus(tw, cmdCtx); err != nil {
		return err
	}
	return tw.Flush()
}

func writeTokenStatus(tw *tabwriter.Writer, cmdCtx *commandContext) error {
	tok, ok := cmdCtx.App.Session.GetToken(cmdCtx.Ctx)
	if !ok {
		return nil
	}
	info, err := tokeninfo.Decode(tok)
	switch {
	case errors.Is(err, tokeninfo.ErrOpaqueToken):
		return writef(tw, "Token:\topaque\n")
	case err != nil:
		cmdCtx.Logger.DebugContext(cmdCtx.Ctx, "decode token", "error", err)
		return writef(tw, "Token:\tunreadable\n")
	case !info.HasExpiry():
		return writef(tw, "Token:\tno expiry\n")
	}

	now := time.Now()
	if info.Expired(now) {
		return writef(tw, "Token:\texpired at %s (the backend will ask you to log in again)\n",
			info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return writef(tw, "Token:\texpires %s (in %s)\n",
		info.ExpiresAt.UTC().Format(time.RFC3339), info.Remaining(now).Round(time.Second))
}

func displayRole(role string) string {
	if role == "" {
		return "unknown"
	}
	return role
}

func runOpen(cmdCtx *commandContext, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: notesctl open <path>")
	}
	res, err := cmdCtx.App.Router.Go(cmdCtx.Ctx, args[0])
	if err != nil {
		return err
	}
	if res.Redirected {
		return writef(cmdCtx.Out, "%s -> %s\n", res.Requested, res.Path)
	}
	return writef(cmdCtx.Out, "%s (%s)\n", res.Path, routeLabel(res.Route))
}

func routeLabel(name string) string {
	if name == "" {
		return "unmatched"
	}
	return fmt.Sprintf("route %s", name)
}
