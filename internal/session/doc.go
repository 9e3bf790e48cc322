// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package session holds the process-wide authentication session.
//
// The session is stored under two keys of a key-value Storage: "token" with
// the raw token and "user" with the JSON-encoded {id, role, name}. It starts
// empty, is written only by a successful login (through the Writer
// capability) and is removed by logout (Clearer). Everything else reads it.
package session
