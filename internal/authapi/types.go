// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package authapi

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" jsonschema:"required,format=email"`
	Password string `json:"password" jsonschema:"required,minLength=8"`
}

// LoginResponse is the successful login reply.
type LoginResponse struct {
	Token string `json:"token" jsonschema:"required,minLength=1"`
	ID    int64  `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// RegisterRequest is the body of POST /api/auth/register. The password
// confirmation never leaves the client.
type RegisterRequest struct {
	FirstName      string `json:"firstName" jsonschema:"required"`
	LastName       string `json:"lastName" jsonschema:"required"`
	Email          string `json:"email" jsonschema:"required,format=email"`
	Password       string `json:"password" jsonschema:"required,minLength=8"`
	DocumentType   string `json:"documentType" jsonschema:"required,example=DNI,example=CE,example=PASSPORT"`
	DocumentNumber string `json:"documentNumber" jsonschema:"required"`
	BirthDate      string `json:"birthDate" jsonschema:"required"`
	PhoneNumber    string `json:"phoneNumber" jsonschema:"required"`
}

// RegisterResponse is the successful registration reply. Only the name is
// guaranteed.
type RegisterResponse struct {
	Token string `json:"token,omitempty"`
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name" jsonschema:"required"`
	Role  string `json:"role,omitempty"`
}

// APIError is the body the backend sends with non-2xx replies.
type APIError struct {
	Timestamp string `json:"timestamp,omitempty"`
	Status    int    `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Path      string `json:"path,omitempty"`
}
