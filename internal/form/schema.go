// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package form

// FieldName identifies a form field.
type FieldName string

// Login form fields.
const (
	FieldEmail    FieldName = "email"
	FieldPassword FieldName = "password"
)

// Registration-only form fields.
const (
	FieldFirstName FieldName = "firstName"
	FieldLastName  FieldName = "lastName"
	FieldDocType   FieldName = "docType"
	FieldDocNumber FieldName = "docNumber"
	FieldBirthDate FieldName = "birthDate"
	FieldPhone     FieldName = "phone"
	FieldConfirm   FieldName = "confirm"
)

// Field pairs a field name with its validation rule.
type Field struct {
	Name FieldName
	Rule Rule
}

// Schema is the ordered list of fields making up a form.
type Schema []Field

// Has reports whether the schema defines name.
func (s Schema) Has(name FieldName) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Names returns the field names in schema order.
func (s Schema) Names() []FieldName {
	names := make([]FieldName, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// LoginSchema returns the fields of the login form.
func LoginSchema() Schema {
	return Schema{
		{Name: FieldEmail, Rule: Single(Email)},
		{Name: FieldPassword, Rule: Single(Password)},
	}
}

// RegisterSchema returns the fields of the registration form.
//
// Names, document type and number, birth date and phone only get a presence
// check. Stricter formats (phone digits, document number shape, birth date in
// the past) belong here once the API agrees on them.
func RegisterSchema() Schema {
	return Schema{
		{Name: FieldFirstName, Rule: Single(Required)},
		{Name: FieldLastName, Rule: Single(Required)},
		{Name: FieldDocType, Rule: Single(Required)},
		{Name: FieldDocNumber, Rule: Single(Required)},
		{Name: FieldBirthDate, Rule: Single(Required)},
		{Name: FieldPhone, Rule: Single(Required)},
		{Name: FieldEmail, Rule: Single(Email)},
		{Name: FieldPassword, Rule: Single(Password)},
		{Name: FieldConfirm, Rule: MatchesField(FieldPassword)},
	}
}
