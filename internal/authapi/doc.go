// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package authapi is the typed login and registration API. Successful
// replies are checked against JSON Schemas generated from the Go types
// before they are decoded, so a reply missing a required field surfaces as a
// malformed failure rather than a zero value.
package authapi
