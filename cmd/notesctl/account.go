package main

import (
	"errors"
	"flag"
	"strconv"
	"strings"

	"github.com/notesapp/notes-console/internal/ports"
)

// singleValueFlags parses a flag set with one string flag that may also be
// given as the first positional argument.
func singleValueFlags(cmdCtx *commandContext, name, flagName, usage string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var v string
	fs.StringVar(&v, flagName, "", usage)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" && fs.NArg() > 0 {
		v = strings.TrimSpace(fs.Arg(0))
	}
	if v == "" {
		return "", errors.New("--" + flagName + " is required")
	}
	return v, nil
}

func runForgotPassword(cmdCtx *commandContext, args []string) error {
	email, err := singleValueFlags(cmdCtx, "forgot-password", "email", "Account email", args)
	if err != nil {
		return err
	}
	if err := cmdCtx.enterView("/forgot-password"); err != nil {
		return err
	}
	msg, err := cmdCtx.App.Auth.ForgotPassword(cmdCtx.Ctx, email)
	if err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeSuccess, "%s", orDefault(msg, "Password reset email sent"))
	return nil
}

func runResendActivation(cmdCtx *commandContext, args []string) error {
	email, err := singleValueFlags(cmdCtx, "resend-activation", "email", "Account email", args)
	if err != nil {
		return err
	}
	msg, err := cmdCtx.App.Auth.ResendActivation(cmdCtx.Ctx, email)
	if err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeSuccess, "%s", orDefault(msg, "Activation email sent"))
	return nil
}

func runActivate(cmdCtx *commandContext, args []string) error {
	token, err := singleValueFlags(cmdCtx, "activate", "token", "Activation token from the email link", args)
	if err != nil {
		return err
	}
	if err := cmdCtx.enterView("/activate?token=" + token); err != nil {
		return err
	}
	msg, err := cmdCtx.App.Auth.Activate(cmdCtx.Ctx, token)
	if err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeSuccess, "%s", orDefault(msg, "Account activated"))
	return nil
}

func runResetPassword(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var token, password string
	fs.StringVar(&token, "token", "", "Reset token from the email link (required)")
	fs.StringVar(&password, "password", "", "New password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("--token is required")
	}
	if err := cmdCtx.enterView("/reset-password?token=" + token); err != nil {
		return err
	}

	password, err := cmdCtx.readSecret(password, "New password")
	if err != nil {
		return err
	}
	msg, err := cmdCtx.App.Auth.ResetPassword(cmdCtx.Ctx, token, password)
	if err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeSuccess, "%s", orDefault(msg, "Password reset; you can log in now"))
	return nil
}

func runChangePassword(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var oldPassword, newPassword string
	fs.StringVar(&oldPassword, "old", "", "Current password (read from stdin when omitted)")
	fs.StringVar(&newPassword, "new", "", "New password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cmdCtx.enterView("/account"); err != nil {
		return err
	}

	oldPassword, err := cmdCtx.readSecret(oldPassword, "Current password")
	if err != nil {
		return err
	}
	newPassword, err = cmdCtx.readSecret(newPassword, "New password")
	if err != nil {
		return err
	}
	msg, err := cmdCtx.App.Auth.ChangePassword(cmdCtx.Ctx, oldPassword, newPassword)
	if err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeSuccess, "%s", orDefault(msg, "Password changed"))
	return nil
}

func runAdminChangePassword(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("admin-change-password", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var (
		userID   int64
		password string
	)
	fs.Int64Var(&userID, "user-id", 0, "Target user ID (required)")
	fs.StringVar(&password, "password", "", "New password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if userID <= 0 {
		return errors.New("--user-id is required")
	}
	if err := cmdCtx.enterView("/utilisateurs/" + strconv.FormatInt(userID, 10)); err != nil {
		return err
	}

	password, err := cmdCtx.readSecret(password, "New password")
	if err != nil {
		return err
	}
	msg, err := cmdCtx.App.Auth.AdminChangePassword(cmdCtx.Ctx, userID, password)
	if err != nil {
		return err
	}
	cmdCtx.notify(ports.NoticeSuccess, "%s", orDefault(msg, "Password changed"))
	return nil
}

func orDefault(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
