// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

// Package observability collects the Prometheus metrics of a CLI run and
// exports them in the node_exporter textfile format.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/oops"
)

// Command status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics contains the custom Prometheus metrics of the CLI itself.
type Metrics struct {
	CommandsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the CLI metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "superticket_cli_commands_total",
				Help: "Total number of CLI command runs by command and status",
			},
			[]string{"command", "status"},
		),
	}

	reg.MustRegister(m.CommandsTotal)
	return m
}

// RecordCommand counts one command run. A nil err is StatusOK.
func (m *Metrics) RecordCommand(command string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.CommandsTotal.WithLabelValues(command, status).Inc()
}

// Registry is a private Prometheus registry with the standard process
// collectors and the CLI metrics.
type Registry struct {
	registry *prometheus.Registry
	metrics  *Metrics
}

// NewRegistry creates a Registry. Each register func is called with the
// registry so packages can add their own metrics (e.g. auth.RegisterMetrics).
func NewRegistry(register ...func(prometheus.Registerer)) *Registry {
	// Create a new registry to avoid polluting the global one
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics := NewMetrics(registry)
	for _, fn := range register {
		fn(registry)
	}

	return &Registry{registry: registry, metrics: metrics}
}

// Metrics returns the CLI metrics.
func (r *Registry) Metrics() *Metrics {
	return r.metrics
}

// Gatherer exposes the registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically. An empty path is a
// no-op.
func (r *Registry) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return oops.Code("METRICS_TEXTFILE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
