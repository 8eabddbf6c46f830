// Copyright (c) 2026 Sodalis. All rights reserved.

// Package metrics registers and exposes the Prometheus instrumentation for
// the API server.
//
// # Architecture
//
// A single [Metrics] value is created in main and shared by the HTTP
// middleware and the auth service. Metrics are operational only — no
// request payload or member identity ever becomes a label value.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	// RequestsTotal counts finished HTTP requests by method and status class.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes end-to-end request latency in seconds.
	RequestDuration *prometheus.HistogramVec

	// LoginsTotal counts authentication attempts by outcome (success/failure).
	// Guard denials are visible through RequestsTotal status labels.
	LoginsTotal *prometheus.CounterVec
}

// New creates and registers all Prometheus collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sodalis_http_requests_total",
			Help: "Total number of HTTP requests processed",
		}, []string{"method", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sodalis_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sodalis_logins_total",
			Help: "Total number of authentication attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method string, status string, start time.Time) {
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// IncrementLogin records one authentication attempt outcome.
func (m *Metrics) IncrementLogin(outcome string) {
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}
