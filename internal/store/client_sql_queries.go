// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// The session table holds at most one row (id = 1).
const (
	saveSession = `
		INSERT INTO session (id, user_id, username, email, token, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id  = excluded.user_id,
			username = excluded.username,
			email    = excluded.email,
			token    = excluded.token,
			saved_at = excluded.saved_at;`

	loadSession = `
		SELECT user_id, username, email, token, saved_at
		FROM session
		WHERE id = 1;`

	clearSession = `DELETE FROM session;`
)
