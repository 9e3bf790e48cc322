// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package auth provides the login and registration submission flows.
//
// # Forms
//
// LoginForm and RegisterForm each own a form.Store and run one submission
// state machine over it:
//
//	Idle → Validating → Invalid → Idle
//	                  → Valid → Submitting → Success → Idle
//	                                       → Failure → Idle
//
// A submit while another is in flight is skipped. Submit never returns an
// error: failures are written to the store's general error slot and
// described by the returned Outcome.
//
// # Dependencies
//
// Forms are created with New*Form constructors that validate dependencies.
// Only LoginForm receives a session.Writer; registration never touches the
// session.
package auth
