// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bytecraft/superticket/internal/session"
)

// errNotLoggedIn is returned by whoami when no session is stored.
var errNotLoggedIn = errors.New("not logged in")

// whoamiConfig holds configuration for the whoami command.
type whoamiConfig struct {
	output string
}

// newWhoamiCmd creates the whoami subcommand with all flags configured.
func newWhoamiCmd(a *app) *cobra.Command {
	cfg := &whoamiConfig{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Show the identity stored with the current session. The token itself
is never printed.`,
		Args: cobra.NoArgs,
		RunE: a.run("whoami", func(cmd *cobra.Command, _ []string) error {
			return runWhoami(cmd, a, cfg)
		}),
	}

	cmd.Flags().StringVarP(&cfg.output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

// runWhoami executes the whoami command.
func runWhoami(cmd *cobra.Command, a *app, cfg *whoamiConfig) error {
	sess, ok, err := a.sessions.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return errNotLoggedIn
	}
	return writeUser(cmd.OutOrStdout(), sess.User, cfg.output)
}

func writeUser(w io.Writer, user session.User, format string) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintf(w, "%s (role %s, id %d)\n", user.Name, user.Role, user.ID)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(user); err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(user); err != nil {
			return fmt.Errorf("failed to format YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to format YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
