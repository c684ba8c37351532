// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics declares the Prometheus collectors exported on /metrics
// and the HTTP middleware that feeds the request collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Invite key metrics
var (
	InviteKeysGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInviteKeysGenerated,
			Help: HelpTextInviteKeysGenerated,
		},
	)

	InviteKeyCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInviteKeyCollisions,
			Help: HelpTextInviteKeyCollisions,
		},
	)

	InviteKeyExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInviteKeyExhausted,
			Help: HelpTextInviteKeyExhausted,
		},
	)
)

// Directory metrics, refreshed by the stats worker.
var (
	DirectoryUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDirectoryUsers,
			Help: HelpTextDirectoryUsers,
		},
	)

	DirectorySubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDirectorySubscriptions,
			Help: HelpTextDirectorySubscriptions,
		},
	)
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
