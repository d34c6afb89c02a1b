// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the signed-in state the client keeps on disk so it can resume
// without asking for credentials again.
type Session struct {
	Identity
	Token   string
	SavedAt time.Time
}
