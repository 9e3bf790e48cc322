// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package form provides the field validators and the observable state store
// behind the login and registration forms.
//
// A Store owns one form instance: its values, per-field errors, a general
// (submission-level) error and the submitting flag. Validators are pure
// functions and can be used on their own.
package form
