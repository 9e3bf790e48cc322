// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Kind classifies why a request did not produce a usable response.
type Kind int

// Failure kinds.
const (
	// KindTransport means the request could not be sent or no response
	// arrived: connection refused, timeout, cancellation.
	KindTransport Kind = iota + 1
	// KindApplication means the server answered with a non-2xx status.
	KindApplication
	// KindMalformed means a 2xx response body could not be understood.
	KindMalformed
)

// MsgNetworkError is the message carried by transport and malformed failures.
const MsgNetworkError = "network error"

// String returns the kind name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Code returns the error code associated with the kind.
func (k Kind) Code() string {
	switch k {
	case KindTransport:
		return "API_TRANSPORT"
	case KindApplication:
		return "API_APPLICATION"
	case KindMalformed:
		return "API_MALFORMED"
	default:
		return "API_UNKNOWN"
	}
}

// Failure is the error arm of every client call.
type Failure struct {
	Kind Kind
	// Status is the HTTP status, zero for transport failures.
	Status int
	// Message is the human-readable message. For application failures it is
	// taken from the response body and may be empty.
	Message string
	// Body is the raw response body, if any.
	Body []byte

	cause error
}

// Error implements error.
func (f *Failure) Error() string {
	switch {
	case f.Status != 0 && f.Message != "":
		return fmt.Sprintf("%s failure (status %d): %s", f.Kind, f.Status, f.Message)
	case f.Status != 0:
		return fmt.Sprintf("%s failure (status %d)", f.Kind, f.Status)
	case f.Message != "":
		return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
	default:
		return f.Kind.String() + " failure"
	}
}

// Unwrap returns the coded cause so oops codes and context survive
// errors.As traversal.
func (f *Failure) Unwrap() error {
	return f.cause
}

// AsFailure classifies err. Errors that are not Failures are treated as
// transport failures. A nil err yields nil.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return transportFailure(err)
}

func transportFailure(err error) *Failure {
	return &Failure{
		Kind:    KindTransport,
		Message: MsgNetworkError,
		cause:   oops.Code(KindTransport.Code()).Wrap(err),
	}
}

func malformedFailure(status int, body []byte, err error) *Failure {
	return &Failure{
		Kind:    KindMalformed,
		Status:  status,
		Message: MsgNetworkError,
		Body:    body,
		cause: oops.Code(KindMalformed.Code()).
			With("status", status).
			Wrap(err),
	}
}

// NewMalformed builds a malformed failure for a response that decoded but
// did not have the expected shape.
func NewMalformed(resp *Response, err error) *Failure {
	if resp == nil {
		return malformedFailure(0, nil, err)
	}
	return malformedFailure(resp.Status, resp.Body, err)
}

func applicationFailure(status int, body []byte) *Failure {
	msg := ApplicationMessage(body)
	return &Failure{
		Kind:    KindApplication,
		Status:  status,
		Message: msg,
		Body:    body,
		cause: oops.Code(KindApplication.Code()).
			With("status", status).
			Errorf("server returned status %d", status),
	}
}

// ApplicationMessage extracts the message of an error response body: the
// JSON "message" field, else the JSON "error" field, else the trimmed body
// text. It returns "" when none is present.
func ApplicationMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return text
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
