// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package listsync

import (
	"slices"

	"github.com/MKhiriev/bizdesk/internal/metrics"
	"github.com/MKhiriev/bizdesk/models"
)

type settings struct {
	kinds   []models.EventKind
	limit   int
	metrics *metrics.Metrics
}

func defaultSettings() settings {
	return settings{kinds: models.AllEventKinds()}
}

// Option customises a [Synchronizer].
type Option func(*settings)

// WithEventKinds restricts which change kinds trigger a refetch. Without it
// inserts, updates and deletes all do. A row count only needs inserts and
// deletes.
func WithEventKinds(kinds ...models.EventKind) Option {
	return func(s *settings) {
		if len(kinds) > 0 {
			s.kinds = slices.Clone(kinds)
		}
	}
}

// WithLimit keeps only the first n rows of every fetch. n <= 0 keeps all.
func WithLimit(n int) Option {
	return func(s *settings) {
		s.limit = n
	}
}

// WithMetrics records fetches, deliveries, change events and subscription
// failures in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}
