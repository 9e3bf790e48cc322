// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bytecraft/superticket/internal/session"
)

func loggedIn(t *testing.T) *cli {
	t.Helper()
	b := newBackend(t, http.StatusOK, loginOK)
	c := newCLI(t, b.srv.URL)
	_, _, err := c.run("login", "--non-interactive", "--email", "ana@x.io", "--password", "secret123")
	require.NoError(t, err)
	return c
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	c := newCLI(t, "http://127.0.0.1:1")
	_, _, err := c.run("whoami")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestWhoami_Formats(t *testing.T) {
	c := loggedIn(t)
	want := session.User{ID: 12, Role: "CLIENT", Name: "Ana"}

	t.Run("text", func(t *testing.T) {
		out, _, err := c.run("whoami")
		require.NoError(t, err)
		assert.Equal(t, "Ana (role CLIENT, id 12)\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := c.run("whoami", "--output", "json")
		require.NoError(t, err)
		assert.NotContains(t, out, "tok-123")

		var got session.User
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := c.run("whoami", "-o", "yaml")
		require.NoError(t, err)
		assert.NotContains(t, out, "tok-123")

		var got session.User
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, want, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := c.run("whoami", "--output", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})
}

func TestWriteUser_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUser(&buf, session.User{Name: "Luis", Role: "ADMIN", ID: 3}, ""))
	assert.Equal(t, "Luis (role ADMIN, id 3)\n", buf.String())
}

func TestLogout(t *testing.T) {
	c := loggedIn(t)

	out, _, err := c.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)

	_, _, err = c.run("whoami")
	require.ErrorIs(t, err, errNotLoggedIn)

	out, _, err = c.run("logout")
	require.NoError(t, err, "logout is idempotent")
	assert.Equal(t, "Logged out.\n", out)
}
