// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value reads the current value of a single counter or gauge.
func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, c.Write(&out))
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	}
	t.Fatalf("unsupported metric %v", c.Desc())
	return 0
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFetch("clients", nil)
		m.ObserveSnapshot("clients", 3)
		m.ObserveChange("clients", "INSERT")
		m.ObserveSubscriptionError("clients")
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.RealtimeConnected()
		m.RealtimeDisconnected()
		m.ObservePublished("clients", "INSERT")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestObserveFetch(t *testing.T) {
	m := New(false)

	m.ObserveFetch("clients", nil)
	m.ObserveFetch("clients", nil)
	m.ObserveFetch("clients", errors.New("boom"))

	assert.Equal(t, 2.0, value(t, m.syncFetches.WithLabelValues("clients", ResultOK)))
	assert.Equal(t, 1.0, value(t, m.syncFetches.WithLabelValues("clients", ResultError)))
}

func TestObserveSnapshot(t *testing.T) {
	m := New(false)

	m.ObserveSnapshot("suppliers", 4)
	m.ObserveSnapshot("suppliers", 2)

	assert.Equal(t, 2.0, value(t, m.syncSnapshots.WithLabelValues("suppliers")))
	assert.Equal(t, 2.0, value(t, m.syncSnapshotRows.WithLabelValues("suppliers")))
}

func TestRealtimeConnectionsGauge(t *testing.T) {
	m := New(false)

	m.RealtimeConnected()
	m.RealtimeConnected()
	m.RealtimeDisconnected()

	assert.Equal(t, 1.0, value(t, m.realtimeConnections))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(true)
	m.ObserveHTTPRequest(http.MethodGet, "/rest/v1/{table}", http.StatusOK, 10*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `bizdesk_http_requests_total{method="GET",route="/rest/v1/{table}",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
