// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLogoutCmd creates the logout subcommand.
func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: a.run("logout", func(cmd *cobra.Command, _ []string) error {
			if err := a.sessions.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			cmd.Println("Logged out.")
			return nil
		}),
	}
}
