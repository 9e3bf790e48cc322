// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package authapi

import (
	"context"
	"net/http"

	"github.com/samber/oops"

	"github.com/bytecraft/superticket/internal/apiclient"
)

// Endpoint paths.
const (
	PathLogin    = "/api/auth/login"
	PathRegister = "/api/auth/register"
)

// Doer sends a single request. *apiclient.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, payload any) (*apiclient.Response, error)
}

// API is the typed authentication API. Every error it returns is an
// *apiclient.Failure.
type API struct {
	client Doer
}

// New creates an API over client.
func New(client Doer) (*API, error) {
	if client == nil {
		return nil, oops.Errorf("api client is required")
	}
	return &API{client: client}, nil
}

// Login exchanges credentials for a session token.
func (a *API) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	return call[LoginResponse](ctx, a.client, PathLogin, SchemaLoginResponse, req)
}

// Register creates an account. The backend answers 201; any 2xx is accepted.
func (a *API) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	return call[RegisterResponse](ctx, a.client, PathRegister, SchemaRegisterResponse, req)
}

func call[T any](ctx context.Context, client Doer, path, schema string, payload any) (T, error) {
	var zero T

	resp, err := client.Do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return zero, apiclient.AsFailure(err)
	}
	if err := Validate(schema, resp.Body); err != nil {
		return zero, apiclient.NewMalformed(resp, err)
	}
	return apiclient.DecodeJSON[T](resp)
}
