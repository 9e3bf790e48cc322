// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for submission metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
	OutcomeSkipped = "skipped"
)

// FormSubmissions counts submit attempts by form and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var FormSubmissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "superticket_form_submissions_total",
		Help: "Total number of form submit attempts",
	},
	[]string{"form", "outcome"},
)

// FormSubmitDuration times submit attempts that were not skipped.
// Use RegisterMetrics to register this with a Prometheus registry.
var FormSubmitDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "superticket_form_submit_duration_seconds",
		Help:    "Form submit duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"form"},
)

// RegisterMetrics registers the auth package metrics with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(FormSubmissions)
	reg.MustRegister(FormSubmitDuration)
}

func recordSubmission(form, outcome string) {
	FormSubmissions.WithLabelValues(form, outcome).Inc()
}

func recordSubmitDuration(form string, d time.Duration) {
	FormSubmitDuration.WithLabelValues(form).Observe(d.Seconds())
}
