// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of bizdesk. A nil
// *Metrics is valid and records nothing, so components can take one as an
// optional dependency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bizdesk"

// Fetch results used as label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups the collectors and the registry they are registered in.
type Metrics struct {
	Registry *prometheus.Registry

	syncFetches        *prometheus.CounterVec
	syncSnapshots      *prometheus.CounterVec
	syncSnapshotRows   *prometheus.GaugeVec
	syncChanges        *prometheus.CounterVec
	syncSubscribeFails *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	realtimeConnections prometheus.Gauge
	changesPublished    *prometheus.CounterVec
}

// New builds a Metrics with a private registry. withRuntime adds the Go and
// process collectors, which the server exposes and tests leave out.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		syncFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listsync",
			Name:      "fetches_total",
			Help:      "Full table fetches performed by list synchronizers.",
		}, []string{"table", "result"}),

		syncSnapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listsync",
			Name:      "snapshots_total",
			Help:      "Snapshots delivered to presentation callbacks.",
		}, []string{"table"}),

		syncSnapshotRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "listsync",
			Name:      "snapshot_rows",
			Help:      "Row count of the most recent snapshot.",
		}, []string{"table"}),

		syncChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listsync",
			Name:      "change_events_total",
			Help:      "Change notifications received by list synchronizers.",
		}, []string{"table", "type"}),

		syncSubscribeFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "listsync",
			Name:      "subscription_errors_total",
			Help:      "Change subscriptions that could not be opened.",
		}, []string{"table"}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),

		realtimeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "connections",
			Help:      "Currently open realtime websocket connections.",
		}),

		changesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "changes_published_total",
			Help:      "Row changes published to the broker.",
		}, []string{"table", "type"}),
	}

	m.Registry.MustRegister(
		m.syncFetches,
		m.syncSnapshots,
		m.syncSnapshotRows,
		m.syncChanges,
		m.syncSubscribeFails,
		m.httpRequests,
		m.httpDuration,
		m.realtimeConnections,
		m.changesPublished,
	)
	if withRuntime {
		m.Registry.MustRegister(
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
			prometheus.NewGoCollector(),
		)
	}

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveFetch(table string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.syncFetches.WithLabelValues(table, result).Inc()
}

func (m *Metrics) ObserveSnapshot(table string, rows int) {
	if m == nil {
		return
	}
	m.syncSnapshots.WithLabelValues(table).Inc()
	m.syncSnapshotRows.WithLabelValues(table).Set(float64(rows))
}

func (m *Metrics) ObserveChange(table, kind string) {
	if m == nil {
		return
	}
	m.syncChanges.WithLabelValues(table, kind).Inc()
}

func (m *Metrics) ObserveSubscriptionError(table string) {
	if m == nil {
		return
	}
	m.syncSubscribeFails.WithLabelValues(table).Inc()
}

// ObserveHTTPRequest records one finished request. route is the chi route
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) RealtimeConnected() {
	if m == nil {
		return
	}
	m.realtimeConnections.Inc()
}

func (m *Metrics) RealtimeDisconnected() {
	if m == nil {
		return
	}
	m.realtimeConnections.Dec()
}

func (m *Metrics) ObservePublished(table, kind string) {
	if m == nil {
		return
	}
	m.changesPublished.WithLabelValues(table, kind).Inc()
}
