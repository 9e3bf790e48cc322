// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"net/http"
	"time"
)

// Deps contains injectable dependencies for the CLI.
// All fields with nil or zero values will use their default implementations.
type Deps struct {
	// Prompter asks for missing form values in interactive mode.
	// Default: survey-backed terminal prompts
	Prompter Prompter

	// HTTPClient performs API requests.
	// Default: http.Client with the configured timeout
	HTTPClient *http.Client

	// RetryBase is the first backoff delay for --retries.
	// Default: 500ms
	RetryBase time.Duration
}

const defaultRetryBase = 500 * time.Millisecond

func (d *Deps) prompter() Prompter {
	if d != nil && d.Prompter != nil {
		return d.Prompter
	}
	return surveyPrompter{}
}

func (d *Deps) retryBase() time.Duration {
	if d != nil && d.RetryBase > 0 {
		return d.RetryBase
	}
	return defaultRetryBase
}

func (d *Deps) httpClient() *http.Client {
	if d != nil {
		return d.HTTPClient
	}
	return nil
}
