// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/oops"

	"github.com/bytecraft/superticket/internal/authapi"
	"github.com/bytecraft/superticket/internal/form"
)

// MsgRegistered is the success acknowledgment; %s is the account name.
const MsgRegistered = "account created, welcome %s"

// RegisterAPI is the network operation used by RegisterForm.
type RegisterAPI interface {
	Register(ctx context.Context, req authapi.RegisterRequest) (authapi.RegisterResponse, error)
}

// RegisterForm is the registration form. A successful registration resets
// the form; it does not log the user in.
type RegisterForm struct {
	submitter
	api RegisterAPI
}

// NewRegisterForm creates a RegisterForm with a no-op logger.
// Returns an error if api is nil.
func NewRegisterForm(api RegisterAPI) (*RegisterForm, error) {
	return NewRegisterFormWithLogger(api, slog.New(slog.DiscardHandler))
}

// NewRegisterFormWithLogger creates a RegisterForm with the provided logger.
// Returns an error if any required dependency is nil.
func NewRegisterFormWithLogger(api RegisterAPI, logger *slog.Logger) (*RegisterForm, error) {
	if api == nil {
		return nil, oops.Errorf("register api is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &RegisterForm{
		submitter: submitter{
			name:     "register",
			store:    form.NewStore(form.RegisterSchema()),
			fallback: MsgRegistrationError,
			logger:   logger,
		},
		api: api,
	}, nil
}

// Store returns the form state.
func (f *RegisterForm) Store() *form.Store {
	return f.store
}

// ObservePhases registers fn to be called on every phase transition. It
// must be set before the first Submit.
func (f *RegisterForm) ObservePhases(fn func(Phase)) {
	f.onPhase = fn
}

// Submit validates the form and, when valid, creates the account. On
// success the form is reset and Outcome.Message holds the acknowledgment.
func (f *RegisterForm) Submit(ctx context.Context) Outcome {
	return f.submit(ctx, f.send)
}

func (f *RegisterForm) send(ctx context.Context, data form.Data) (string, error) {
	resp, err := f.api.Register(ctx, RegisterRequest(data))
	if err != nil {
		return "", err
	}

	f.store.Reset()
	f.logger.InfoContext(ctx, "registration succeeded", "user_id", resp.ID)
	return fmt.Sprintf(MsgRegistered, resp.Name), nil
}

// RegisterRequest maps registration form data to the API request shape.
func RegisterRequest(data form.Data) authapi.RegisterRequest {
	return authapi.RegisterRequest{
		FirstName:      data[form.FieldFirstName],
		LastName:       data[form.FieldLastName],
		Email:          data[form.FieldEmail],
		Password:       data[form.FieldPassword],
		DocumentType:   data[form.FieldDocType],
		DocumentNumber: data[form.FieldDocNumber],
		BirthDate:      data[form.FieldBirthDate],
		PhoneNumber:    data[form.FieldPhone],
	}
}
