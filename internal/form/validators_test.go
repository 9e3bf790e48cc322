// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bytecraft/superticket/internal/form"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: form.MsgRequired},
		{name: "spaces only", value: "   ", want: form.MsgRequired},
		{name: "tabs and newlines", value: "\t\n", want: form.MsgRequired},
		{name: "present", value: "Ana", want: ""},
		{name: "present with padding", value: "  Ana  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, form.Required(tt.value))
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty is required", value: "", want: form.MsgRequired},
		{name: "whitespace is required", value: "  ", want: form.MsgRequired},
		{name: "simple", value: "test@test.com", want: ""},
		{name: "subdomain", value: "ana.perez@mail.example.pe", want: ""},
		{name: "plus tag", value: "ana+tickets@gmail.com", want: ""},
		{name: "no at", value: "bad-email", want: form.MsgInvalidEmail},
		{name: "no tld", value: "ana@localhost", want: form.MsgInvalidEmail},
		{name: "no local part", value: "@gmail.com", want: form.MsgInvalidEmail},
		{name: "two ats", value: "ana@@gmail.com", want: form.MsgInvalidEmail},
		{name: "space in local part", value: "ana perez@gmail.com", want: form.MsgInvalidEmail},
		{name: "space before at", value: "ana @gmail.com", want: form.MsgInvalidEmail},
		{name: "leading space", value: " ana@gmail.com", want: form.MsgInvalidEmail},
		{name: "dot right after at", value: "ana@.com", want: form.MsgInvalidEmail},
		{name: "trailing dot", value: "ana@gmail.", want: form.MsgInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, form.Email(tt.value))
		})
	}
}

func TestPassword(t *testing.T) {
	t.Run("empty is required", func(t *testing.T) {
		assert.Equal(t, form.MsgRequired, form.Password(""))
	})

	t.Run("shorter than minimum fails", func(t *testing.T) {
		for n := 1; n < form.MinPasswordLength; n++ {
			assert.Equal(t, form.MsgPasswordTooShort, form.Password(strings.Repeat("a", n)), "length %d", n)
		}
	})

	t.Run("minimum and longer pass", func(t *testing.T) {
		for n := form.MinPasswordLength; n <= 64; n++ {
			assert.Empty(t, form.Password(strings.Repeat("a", n)), "length %d", n)
		}
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		assert.Equal(t, form.MsgPasswordTooShort, form.Password("ñññññññ"))
		assert.Empty(t, form.Password("contraseña"))
	})
}

func TestConfirm(t *testing.T) {
	assert.Equal(t, form.MsgRequired, form.Confirm("", "password123"))
	assert.Equal(t, form.MsgPasswordMismatch, form.Confirm("password124", "password123"))
	assert.Equal(t, form.MsgPasswordMismatch, form.Confirm("Password123", "password123"))
	assert.Empty(t, form.Confirm("password123", "password123"))
}

func TestMatchesField(t *testing.T) {
	rule := form.MatchesField(form.FieldPassword)
	data := form.Data{form.FieldPassword: "password123"}

	assert.Empty(t, rule("password123", data))
	assert.Equal(t, form.MsgPasswordMismatch, rule("other-password", data))
	assert.Equal(t, form.MsgRequired, rule("", data))
}

func TestSchemas(t *testing.T) {
	assert.Equal(t,
		[]form.FieldName{form.FieldEmail, form.FieldPassword},
		form.LoginSchema().Names())

	register := form.RegisterSchema()
	assert.Len(t, register, 9)
	assert.True(t, register.Has(form.FieldConfirm))
	assert.True(t, register.Has(form.FieldDocType))
	assert.False(t, form.LoginSchema().Has(form.FieldConfirm))
}
