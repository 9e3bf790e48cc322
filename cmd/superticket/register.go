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

// registerConfig holds configuration for the register command.
type registerConfig struct {
	values  map[form.FieldName]*string
	retries uint64
}

var registerPrompts = []fieldPrompt{
	{name: form.FieldFirstName, message: "First name"},
	{name: form.FieldLastName, message: "Last name"},
	{name: form.FieldDocType, message: "Document type", options: form.DocTypes},
	{name: form.FieldDocNumber, message: "Document number"},
	{name: form.FieldBirthDate, message: "Birth date (YYYY-MM-DD)"},
	{name: form.FieldPhone, message: "Phone"},
	{name: form.FieldEmail, message: "Email"},
	{name: form.FieldPassword, message: "Password", secret: true},
	{name: form.FieldConfirm, message: "Confirm password", secret: true},
}

// registerFlags maps flag names to form fields.
var registerFlags = []struct {
	flag  string
	field form.FieldName
	usage string
}{
	{"first-name", form.FieldFirstName, "first name"},
	{"last-name", form.FieldLastName, "last name"},
	{"doc-type", form.FieldDocType, "document type (DNI, CE, PASSPORT)"},
	{"doc-number", form.FieldDocNumber, "document number"},
	{"birth-date", form.FieldBirthDate, "birth date"},
	{"phone", form.FieldPhone, "phone number"},
	{"email", form.FieldEmail, "account email"},
	{"password", form.FieldPassword, "account password (prompted when omitted)"},
	{"confirm", form.FieldConfirm, "password confirmation"},
}

// newRegisterCmd creates the register subcommand with all flags configured.
func newRegisterCmd(a *app) *cobra.Command {
	cfg := &registerConfig{values: make(map[form.FieldName]*string, len(registerFlags))}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long: `Create a new SuperTicket account. Missing values are prompted for
unless --non-interactive is set. Registration does not sign you in.`,
		Args: cobra.NoArgs,
		RunE: a.run("register", func(cmd *cobra.Command, _ []string) error {
			return runRegister(cmd, a, cfg)
		}),
	}

	for _, rf := range registerFlags {
		cfg.values[rf.field] = cmd.Flags().String(rf.flag, "", rf.usage)
	}
	cmd.Flags().Uint64Var(&cfg.retries, "retries", 0, "resubmit this many times on network errors")

	return cmd
}

// runRegister executes the register command.
func runRegister(cmd *cobra.Command, a *app, cfg *registerConfig) error {
	f, err := auth.NewRegisterFormWithLogger(a.api, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create registration form: %w", err)
	}

	store := f.Store()
	for _, rf := range registerFlags {
		if err := store.UpdateField(rf.field, *cfg.values[rf.field]); err != nil {
			return fmt.Errorf("failed to set %s: %w", rf.flag, err)
		}
	}

	out, err := a.submitForm(cmd, f, registerPrompts, cfg.retries)
	if err != nil {
		return err
	}
	if out.Phase == auth.PhaseFailure {
		return errors.New(out.Message)
	}

	cmd.Println(out.Message)
	return nil
}
