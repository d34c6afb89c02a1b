// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores or establishes a session, then mounts the list synchronizers
// behind the terminal UI for as long as the main window is open.
package client
