// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package main is the entry point for the SuperTicket command-line client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytecraft/superticket/pkg/errutil"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// Exit statuses.
const (
	exitFailure = 1
	exitConfig  = 2
)

// exitCode maps a command error to the process exit status. Configuration
// errors exit with exitConfig so scripts can tell them from failed logins.
func exitCode(err error) int {
	if strings.HasPrefix(errutil.Code(err), "CONFIG_") {
		return exitConfig
	}
	return exitFailure
}
