// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package apiclient sends JSON requests to the SuperTicket backend and
// classifies every outcome as either a 2xx Response or a *Failure of kind
// transport, application or malformed. It never retries.
package apiclient
