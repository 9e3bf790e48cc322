// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package authapi

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names.
const (
	SchemaLoginRequest     = "login-request"
	SchemaLoginResponse    = "login-response"
	SchemaRegisterRequest  = "register-request"
	SchemaRegisterResponse = "register-response"
	SchemaAPIError         = "api-error"
)

type schemaInfo struct {
	value any
	title string
}

var schemas = map[string]schemaInfo{
	SchemaLoginRequest:     {&LoginRequest{}, "SuperTicket login request"},
	SchemaLoginResponse:    {&LoginResponse{}, "SuperTicket login response"},
	SchemaRegisterRequest:  {&RegisterRequest{}, "SuperTicket registration request"},
	SchemaRegisterResponse: {&RegisterResponse{}, "SuperTicket registration response"},
	SchemaAPIError:         {&APIError{}, "SuperTicket API error"},
}

var (
	compiledMu sync.Mutex
	compiled   = make(map[string]*jschema.Schema)
)

// SchemaNames returns every schema name in sorted order.
func SchemaNames() []string {
	return slices.Sorted(maps.Keys(schemas))
}

// SchemaID returns the $id of the named schema.
func SchemaID(name string) string {
	return "https://superticket.dev/schemas/" + name + ".schema.json"
}

// GenerateSchema generates the JSON Schema for the named API type.
func GenerateSchema(name string) ([]byte, error) {
	info, ok := schemas[name]
	if !ok {
		return nil, oops.Code("SCHEMA_UNKNOWN").With("schema", name).Errorf("unknown schema %q", name)
	}

	r := jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  true,
	}
	schema := r.Reflect(info.value)
	schema.ID = jsonschema.ID(SchemaID(name))
	schema.Title = info.title

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("SCHEMA_MARSHAL_FAILED").With("schema", name).Wrap(err)
	}
	return data, nil
}

// Validate checks a JSON document against the named schema.
func Validate(name string, doc []byte) error {
	sch, err := compiledSchema(name)
	if err != nil {
		return err
	}

	inst, err := jschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return oops.Code("SCHEMA_INVALID_JSON").With("schema", name).Wrap(err)
	}
	if err := sch.Validate(inst); err != nil {
		return oops.Code("SCHEMA_VIOLATION").With("schema", name).Wrap(err)
	}
	return nil
}

func compiledSchema(name string) (*jschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if sch, ok := compiled[name]; ok {
		return sch, nil
	}

	raw, err := GenerateSchema(name)
	if err != nil {
		return nil, err
	}
	doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}

	c := jschema.NewCompiler()
	id := SchemaID(name)
	if err := c.AddResource(id, doc); err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}
	sch, err := c.Compile(id)
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}

	compiled[name] = sch
	return sch, nil
}
