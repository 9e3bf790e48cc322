// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/bytecraft/superticket/internal/auth"
	"github.com/bytecraft/superticket/internal/form"
)

// maxPromptRounds bounds how often invalid fields are asked again.
const maxPromptRounds = 3

// errInvalidForm is returned when the form still fails validation after the
// last prompt round (or immediately in non-interactive mode).
var errInvalidForm = errors.New("form has invalid fields")

// submittable is a form with a submission flow.
type submittable interface {
	Store() *form.Store
	Submit(ctx context.Context) auth.Outcome
}

// fieldPrompt describes how to ask for one field.
type fieldPrompt struct {
	name    form.FieldName
	message string
	secret  bool
	options []string
}

func (a *app) ask(ctx context.Context, p fieldPrompt, current string) (string, error) {
	prompter := a.deps.prompter()
	switch {
	case p.secret:
		return prompter.Password(ctx, p.message)
	case len(p.options) > 0:
		return prompter.Select(ctx, p.message, p.options, current)
	default:
		return prompter.Input(ctx, p.message, current)
	}
}

// fill prompts for each field selected by want.
func (a *app) fill(ctx context.Context, store *form.Store, prompts []fieldPrompt, want func(form.FieldName) bool) error {
	for _, p := range prompts {
		if !want(p.name) {
			continue
		}
		value, err := a.ask(ctx, p, store.Value(p.name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p.name, err)
		}
		if err := store.UpdateField(p.name, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.name, err)
		}
	}
	return nil
}

// submitForm fills missing values, submits and re-prompts invalid fields.
// Transport failures are resubmitted up to retries times.
func (a *app) submitForm(cmd *cobra.Command, f submittable, prompts []fieldPrompt, retries uint64) (auth.Outcome, error) {
	ctx := cmd.Context()
	store := f.Store()

	if !a.nonInteractive {
		empty := func(name form.FieldName) bool { return store.Value(name) == "" }
		if err := a.fill(ctx, store, prompts, empty); err != nil {
			return auth.Outcome{}, err
		}
	}

	for round := 1; ; round++ {
		out, err := a.submitWithRetry(ctx, f, retries)
		if err != nil {
			return out, err
		}
		if out.Phase != auth.PhaseInvalid {
			return out, nil
		}

		printFieldErrors(cmd, store.Snapshot().Errors, prompts)
		if a.nonInteractive || round >= maxPromptRounds {
			return out, errInvalidForm
		}
		invalid := func(name form.FieldName) bool { return store.Error(name) != "" }
		if err := a.fill(ctx, store, prompts, invalid); err != nil {
			return out, err
		}
	}
}

func (a *app) submitWithRetry(ctx context.Context, f submittable, retries uint64) (auth.Outcome, error) {
	var out auth.Outcome
	backoff := retry.WithMaxRetries(retries, retry.NewExponential(a.deps.retryBase()))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		out = f.Submit(ctx)
		if out.Phase == auth.PhaseFailure && out.Transient {
			a.logger.InfoContext(ctx, "submit failed, will retry if attempts remain",
				"attempt", attempt,
				"retries", retries,
			)
			return retry.RetryableError(errors.New(out.Message))
		}
		return nil
	})
	if err != nil && out.Phase != auth.PhaseFailure {
		// Cancelled before the first attempt.
		return out, fmt.Errorf("submit interrupted: %w", err)
	}
	return out, nil
}

func printFieldErrors(cmd *cobra.Command, errs form.Errors, prompts []fieldPrompt) {
	for _, p := range prompts {
		if msg, ok := errs[p.name]; ok {
			cmd.PrintErrf("  %s: %s\n", p.name, msg)
		}
	}
}
