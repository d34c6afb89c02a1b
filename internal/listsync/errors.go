// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package listsync

import "errors"

var (
	// ErrAlreadyStarted is returned by Start on a running synchronizer.
	ErrAlreadyStarted = errors.New("synchronizer already started")
	// ErrStopped is returned by Start after Stop. Synchronizers are single use.
	ErrStopped = errors.New("synchronizer stopped")
	// ErrNilCallback is returned by Start without a snapshot callback.
	ErrNilCallback = errors.New("nil snapshot callback")
)
