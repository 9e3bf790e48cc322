// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation messages.
const (
	MsgRequired         = "field is required"
	MsgInvalidEmail     = "invalid email format"
	MsgPasswordTooShort = "must contain at least 8 characters"
	MsgPasswordMismatch = "passwords do not match"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// emailRegex matches local@domain.tld with no whitespace and a single @.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Document types offered by the registration prompt.
const (
	DocTypeDNI      = "DNI"
	DocTypeCE       = "CE"
	DocTypePassport = "PASSPORT"
)

// DocTypes lists the accepted document types in display order.
var DocTypes = []string{DocTypeDNI, DocTypeCE, DocTypePassport}

// Required fails empty or whitespace-only values.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgRequired
	}
	return ""
}

// Email checks presence and the local@domain.tld shape.
func Email(value string) string {
	if msg := Required(value); msg != "" {
		return msg
	}
	if !emailRegex.MatchString(value) {
		return MsgInvalidEmail
	}
	return ""
}

// Password checks presence and minimum length. Length counts characters,
// not bytes.
func Password(value string) string {
	if value == "" {
		return MsgRequired
	}
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return MsgPasswordTooShort
	}
	return ""
}

// Confirm checks that the confirmation is present and equals password exactly.
func Confirm(confirm, password string) string {
	if confirm == "" {
		return MsgRequired
	}
	if confirm != password {
		return MsgPasswordMismatch
	}
	return ""
}

// Rule validates one field. It returns an empty string when the value is
// valid. data is the full form so cross-field rules can read other values.
type Rule func(value string, data Data) string

// Single adapts a single-value validator into a Rule.
func Single(fn func(string) string) Rule {
	return func(value string, _ Data) string {
		return fn(value)
	}
}

// MatchesField builds a Rule that confirms value against another field.
func MatchesField(other FieldName) Rule {
	return func(value string, data Data) string {
		return Confirm(value, data[other])
	}
}
