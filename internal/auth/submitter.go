// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bytecraft/superticket/internal/apiclient"
	"github.com/bytecraft/superticket/internal/form"
	"github.com/bytecraft/superticket/pkg/errutil"
)

var tracer = otel.Tracer("superticket/auth")

// Failure messages written to the general error slot.
const (
	MsgNetworkError         = apiclient.MsgNetworkError
	MsgIncorrectCredentials = "incorrect credentials"
	MsgRegistrationError    = "registration error"
	MsgSessionSaveFailed    = "could not save session"
)

// Phase is a state of the submission state machine.
type Phase int

// Phases. Every attempt starts and ends in PhaseIdle.
const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseInvalid
	PhaseValid
	PhaseSubmitting
	PhaseSuccess
	PhaseFailure
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseInvalid:
		return "invalid"
	case PhaseValid:
		return "valid"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome describes how one submit attempt ended.
type Outcome struct {
	// Phase is the last phase reached before returning to idle: PhaseInvalid,
	// PhaseSuccess or PhaseFailure. It is PhaseIdle when the attempt was
	// skipped.
	Phase Phase
	// Skipped is true when a submission was already in flight.
	Skipped bool
	// Message is the success acknowledgment or the failure message.
	Message string
	// Transient is true for failures where the request never got an answer.
	// Resubmitting the same data may succeed.
	Transient bool
}

// userError carries the message shown to the user for a failure that did
// not come from the API.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *userError) Unwrap() error { return e.err }

// sendFunc performs the network call for a validated data snapshot and the
// success side effects. It returns the success message.
type sendFunc func(ctx context.Context, data form.Data) (string, error)

// submitter runs the submission state machine over a form store.
type submitter struct {
	name     string
	store    *form.Store
	fallback string
	logger   *slog.Logger
	onPhase  func(Phase)
}

func (s *submitter) enter(ctx context.Context, p Phase) {
	s.logger.DebugContext(ctx, "form phase", "form", s.name, "phase", p.String())
	trace.SpanFromContext(ctx).AddEvent("phase", trace.WithAttributes(attribute.String("phase", p.String())))
	if s.onPhase != nil {
		s.onPhase(p)
	}
}

func (s *submitter) submit(ctx context.Context, send sendFunc) (out Outcome) {
	ctx, span := tracer.Start(ctx, "form.submit",
		trace.WithAttributes(attribute.String("form.name", s.name)),
	)
	defer span.End()

	start := time.Now()
	s.enter(ctx, PhaseValidating)

	data, res := s.store.Begin()
	switch res {
	case form.BeginBusy:
		s.logger.DebugContext(ctx, "submit ignored, already submitting", "form", s.name)
		span.SetAttributes(attribute.Bool("form.skipped", true))
		recordSubmission(s.name, OutcomeSkipped)
		return Outcome{Phase: PhaseIdle, Skipped: true}
	case form.BeginInvalid:
		s.enter(ctx, PhaseInvalid)
		s.enter(ctx, PhaseIdle)
		span.SetAttributes(attribute.Bool("form.invalid", true))
		recordSubmission(s.name, OutcomeInvalid)
		recordSubmitDuration(s.name, time.Since(start))
		return Outcome{Phase: PhaseInvalid}
	case form.BeginOK:
	}

	s.enter(ctx, PhaseValid)
	s.enter(ctx, PhaseSubmitting)

	defer func() {
		if r := recover(); r != nil {
			err := &userError{
				msg: MsgNetworkError,
				err: oops.Code("FORM_SUBMIT_PANIC").With("form", s.name).Errorf("panic during submit: %v", r),
			}
			out = s.fail(ctx, span, err)
		}
		recordSubmitDuration(s.name, time.Since(start))
	}()

	msg, err := send(ctx, data)
	if err != nil {
		return s.fail(ctx, span, err)
	}

	s.store.SetSubmitting(false)
	s.enter(ctx, PhaseSuccess)
	s.enter(ctx, PhaseIdle)
	span.SetStatus(codes.Ok, "")
	recordSubmission(s.name, OutcomeSuccess)
	return Outcome{Phase: PhaseSuccess, Message: msg}
}

func (s *submitter) fail(ctx context.Context, span trace.Span, err error) Outcome {
	msg := s.failureMessage(err)

	s.store.SetGeneralError(msg)
	s.store.SetSubmitting(false)

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	errutil.LogErrorContext(ctx, s.logger, slog.LevelWarn, "form submission failed", err)

	s.enter(ctx, PhaseFailure)
	s.enter(ctx, PhaseIdle)
	recordSubmission(s.name, OutcomeFailure)
	return Outcome{Phase: PhaseFailure, Message: msg, Transient: transient(err)}
}

func transient(err error) bool {
	var ue *userError
	if errors.As(err, &ue) {
		return false
	}
	return apiclient.AsFailure(err).Kind == apiclient.KindTransport
}

// failureMessage picks the general error for err. Application failures use
// the server message when there is one; everything else is a network error.
func (s *submitter) failureMessage(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg
	}

	f := apiclient.AsFailure(err)
	if f.Kind != apiclient.KindApplication {
		return MsgNetworkError
	}
	if f.Message != "" {
		return f.Message
	}
	return s.fallback
}
