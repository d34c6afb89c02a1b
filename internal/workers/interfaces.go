// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers starts and stops groups of long-lived background
// components, such as list synchronizers, as a unit.
//
// [Workers.Run] guarantees that everything it started is stopped again on
// every exit path, including a panic in the wrapped function.
package workers

import "context"

// Worker is a background component with an explicit lifetime.
//
// Start must not block for the lifetime of the worker; it launches whatever
// goroutines the worker needs and returns. Stop must be idempotent.
type Worker interface {
	Start(ctx context.Context) error
	Stop()
}
