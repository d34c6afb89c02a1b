// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

type localSessionRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalSessionRepository constructs a SQLite-backed
// [LocalSessionRepository].
func NewLocalSessionRepository(db *DB, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{db: db, logger: logger, now: time.Now}
}

// SaveSession replaces the stored session. SavedAt is stamped when zero.
func (r *localSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	if session.SavedAt.IsZero() {
		session.SavedAt = r.now().UTC()
	}

	_, err := r.db.ExecContext(ctx, saveSession,
		session.UserID, session.Username, session.Email, session.Token, session.SavedAt)
	if err != nil {
		r.logger.Err(err).Str("func", "*localSessionRepository.SaveSession").Msg("error saving session")
		return fmt.Errorf("error saving session: %w", err)
	}

	return nil
}

func (r *localSessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	var s models.Session

	err := r.db.QueryRowContext(ctx, loadSession).
		Scan(&s.UserID, &s.Username, &s.Email, &s.Token, &s.SavedAt)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, ErrNoLocalSession
	default:
		r.logger.Err(err).Str("func", "*localSessionRepository.LoadSession").Msg("error loading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
}

func (r *localSessionRepository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearSession); err != nil {
		r.logger.Err(err).Str("func", "*localSessionRepository.ClearSession").Msg("error clearing session")
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}
