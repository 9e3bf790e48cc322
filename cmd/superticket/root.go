// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bytecraft/superticket/internal/apiclient"
	"github.com/bytecraft/superticket/internal/auth"
	"github.com/bytecraft/superticket/internal/authapi"
	"github.com/bytecraft/superticket/internal/config"
	"github.com/bytecraft/superticket/internal/logging"
	"github.com/bytecraft/superticket/internal/observability"
	"github.com/bytecraft/superticket/internal/session"
	"github.com/bytecraft/superticket/pkg/errutil"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	deps *Deps

	// Flags not covered by config.RegisterFlags.
	configFile     string
	nonInteractive bool
	ephemeral      bool

	cfg      config.Config
	logger   *slog.Logger
	metrics  *observability.Registry
	sessions *session.Store
	api      *authapi.API
}

// NewRootCmd creates the root command for the SuperTicket CLI.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(nil)
}

// NewRootCmdWithDeps creates the root command with injected dependencies.
func NewRootCmdWithDeps(deps *Deps) *cobra.Command {
	a := &app{deps: deps}

	cmd := &cobra.Command{
		Use:   "superticket",
		Short: "SuperTicket - sign in and manage your account",
		Long: `SuperTicket is the command-line client for the SuperTicket ticketing
service. It logs you in, creates accounts and keeps the session token for
other tools to use.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file path")
	flags.BoolVar(&a.nonInteractive, "non-interactive", false, "never prompt; take every value from flags")
	flags.BoolVar(&a.ephemeral, "ephemeral", false, "keep the session in memory only")
	config.RegisterFlags(flags)

	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newRegisterCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))

	return cmd
}

// setup loads configuration and builds the shared collaborators.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.Setup("superticket", version, cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
	a.metrics = observability.NewRegistry(auth.RegisterMetrics)

	var storage session.Storage
	if a.ephemeral {
		storage = session.NewMemoryStorage()
	} else {
		storage = session.NewFileStorage(cfg.SessionFile)
	}
	a.sessions, err = session.NewStore(storage)
	if err != nil {
		return err
	}

	client := apiclient.New(cfg.APIURL,
		apiclient.WithHTTPClient(a.deps.httpClient()),
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithUserAgent("superticket/"+version),
		apiclient.WithLogger(a.logger),
	)
	a.api, err = authapi.New(client)
	if err != nil {
		return err
	}

	a.logger.Debug("configuration loaded",
		"command", cmd.Name(),
		"api_url", client.BaseURL(),
		"session_file", cfg.SessionFile,
		"ephemeral", a.ephemeral,
	)
	return nil
}

// run wraps a command body with metrics recording and export.
func (a *app) run(name string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		a.metrics.Metrics().RecordCommand(name, err)
		if werr := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); werr != nil {
			errutil.LogError(a.logger, "failed to write metrics", werr)
		}
		return err
	}
}
