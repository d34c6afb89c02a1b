// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errEmptyHTTPAddress = errors.New("http address is empty")
	errNoHTTPHandler    = errors.New("http handler is not initialized")
	errNotConfigured    = errors.New("server is not configured")
)
