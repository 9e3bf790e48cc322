// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"context"
	"errors"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter abstracts the terminal prompts so commands can be tested without
// a real terminal.
type Prompter interface {
	Input(ctx context.Context, message, def string) (string, error)
	Password(ctx context.Context, message string) (string, error)
	Select(ctx context.Context, message string, options []string, def string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Password(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Password{
		Message: message,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Select(ctx context.Context, message string, options []string, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := selectPrompt(message, options, def)
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// selectPrompt builds a Select. def becomes the default only when it is one
// of the options; survey rejects any other default.
func selectPrompt(message string, options []string, def string) *survey.Select {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if slices.Contains(options, def) {
		prompt.Default = def
	}
	return prompt
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
