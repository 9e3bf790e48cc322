// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package auth

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/bytecraft/superticket/internal/authapi"
	"github.com/bytecraft/superticket/internal/form"
	"github.com/bytecraft/superticket/internal/session"
)

// LoginAPI is the network operation used by LoginForm.
type LoginAPI interface {
	Login(ctx context.Context, req authapi.LoginRequest) (authapi.LoginResponse, error)
}

// LoginForm is the login form: its state store plus the submission flow that
// exchanges credentials for a session.
type LoginForm struct {
	submitter
	api      LoginAPI
	sessions session.Writer
}

// NewLoginForm creates a LoginForm with a no-op logger.
// Returns an error if any required dependency is nil.
func NewLoginForm(api LoginAPI, sessions session.Writer) (*LoginForm, error) {
	return NewLoginFormWithLogger(api, sessions, slog.New(slog.DiscardHandler))
}

// NewLoginFormWithLogger creates a LoginForm with the provided logger.
// Returns an error if any required dependency is nil.
func NewLoginFormWithLogger(api LoginAPI, sessions session.Writer, logger *slog.Logger) (*LoginForm, error) {
	if api == nil {
		return nil, oops.Errorf("login api is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("session writer is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &LoginForm{
		submitter: submitter{
			name:     "login",
			store:    form.NewStore(form.LoginSchema()),
			fallback: MsgIncorrectCredentials,
			logger:   logger,
		},
		api:      api,
		sessions: sessions,
	}, nil
}

// Store returns the form state.
func (f *LoginForm) Store() *form.Store {
	return f.store
}

// ObservePhases registers fn to be called on every phase transition. It
// must be set before the first Submit.
func (f *LoginForm) ObservePhases(fn func(Phase)) {
	f.onPhase = fn
}

// Submit validates the form and, when valid, logs in and persists the
// session. It never returns an error; failures land in the store's general
// error and in the Outcome.
func (f *LoginForm) Submit(ctx context.Context) Outcome {
	return f.submit(ctx, f.send)
}

func (f *LoginForm) send(ctx context.Context, data form.Data) (string, error) {
	resp, err := f.api.Login(ctx, authapi.LoginRequest{
		Email:    data[form.FieldEmail],
		Password: data[form.FieldPassword],
	})
	if err != nil {
		return "", err
	}

	sess := session.Session{
		Token: resp.Token,
		User: session.User{
			ID:   resp.ID,
			Role: resp.Role,
			Name: resp.Name,
		},
	}
	if err := f.sessions.Persist(sess); err != nil {
		return "", &userError{msg: MsgSessionSaveFailed, err: err}
	}

	f.logger.InfoContext(ctx, "login succeeded", "user_id", resp.ID, "role", resp.Role)
	return "", nil
}
