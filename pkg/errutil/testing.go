// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package errutil

import (
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytecraft/superticket/internal/apiclient"
)

// AssertErrorCode asserts that err carries the given oops code anywhere in
// its chain.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	_, ok := oops.AsOops(err)
	require.True(t, ok, "expected an oops error, got %T: %v", err, err)
	assert.Equal(t, code, Code(err), "error: %v", err)
}

// AssertErrorContext asserts that err carries key=value in its oops context.
func AssertErrorContext(t *testing.T, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected an oops error, got %T: %v", err, err)
	ctx := oopsErr.Context()
	require.Contains(t, ctx, key, "error: %v", err)
	assert.Equal(t, value, ctx[key], "context key %q", key)
}

// AssertFailureKind asserts that err is an API failure of the given kind and
// returns it for further checks. Foreign errors do not pass, even though
// apiclient.AsFailure would classify them as transport failures.
func AssertFailureKind(t *testing.T, err error, kind apiclient.Kind) *apiclient.Failure {
	t.Helper()
	var failure *apiclient.Failure
	require.True(t, errors.As(err, &failure), "expected *apiclient.Failure, got %T: %v", err, err)
	assert.Equal(t, kind, failure.Kind, "failure: %v", err)
	return failure
}
