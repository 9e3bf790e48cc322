// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytecraft/superticket/internal/auth"
	"github.com/bytecraft/superticket/internal/form"
)

// loginConfig holds configuration for the login command.
type loginConfig struct {
	email    string
	password string
	retries  uint64
}

var loginPrompts = []fieldPrompt{
	{name: form.FieldEmail, message: "Email"},
	{name: form.FieldPassword, message: "Password", secret: true},
}

// newLoginCmd creates the login subcommand with all flags configured.
func newLoginCmd(a *app) *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. On success the session token and
your identity are stored in the session file for other tools to read.`,
		Args: cobra.NoArgs,
		RunE: a.run("login", func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, a, cfg)
		}),
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().Uint64Var(&cfg.retries, "retries", 0, "resubmit this many times on network errors")

	return cmd
}

// runLogin executes the login command.
func runLogin(cmd *cobra.Command, a *app, cfg *loginConfig) error {
	f, err := auth.NewLoginFormWithLogger(a.api, a.sessions, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create login form: %w", err)
	}

	store := f.Store()
	if err := store.UpdateField(form.FieldEmail, cfg.email); err != nil {
		return fmt.Errorf("failed to set email: %w", err)
	}
	if err := store.UpdateField(form.FieldPassword, cfg.password); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	out, err := a.submitForm(cmd, f, loginPrompts, cfg.retries)
	if err != nil {
		return err
	}
	if out.Phase == auth.PhaseFailure {
		return errors.New(out.Message)
	}

	if sess, ok, err := a.sessions.Load(); err == nil && ok && sess.User.Name != "" {
		cmd.Printf("Logged in as %s.\n", sess.User.Name)
		return nil
	}
	cmd.Println("Logged in.")
	return nil
}
