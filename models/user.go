// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id,omitempty"`

	// Username is the display name shown in the user menu.
	Username string `json:"username"`

	// Email is the unique sign-in identifier.
	Email string `json:"email"`

	// Password is the plaintext password as received from the client. It is
	// only populated on the way in and is never persisted.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity returns the public part of the account.
func (u User) Identity() Identity {
	return Identity{UserID: u.UserID, Username: u.Username, Email: u.Email}
}

// Identity is the signed-in user as seen by clients.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
