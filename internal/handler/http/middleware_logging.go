// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/bizdesk/internal/logger"
)

// withLogging writes one access log line per request and feeds the request
// metrics, labelled by chi route pattern rather than raw path.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		route := routePattern(r)
		h.metrics.ObserveHTTPRequest(r.Method, route, rw.statusCode(), elapsed)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("route", route).
			Int("status", rw.statusCode()).
			Int("size", rw.size).
			Dur("duration", elapsed).
			Send()
	})
}

// routePattern is evaluated after the handler ran, when chi has filled in
// the matched pattern.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
