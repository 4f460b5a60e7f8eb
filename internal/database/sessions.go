package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

// CreateSession issues a new token for userID valid for ttl from now
func (s *Store) CreateSession(ctx context.Context, userID int, now time.Time, ttl time.Duration) (*models.Session, error) {
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now.UTC(),
		ExpiresAt: now.UTC().Add(ttl),
	}
	query := `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, sess.Token, sess.UserID, sess.CreatedAt, sess.ExpiresAt); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// SessionUser resolves a token to its user. Expired or unknown tokens
// report ErrNotFound.
func (s *Store) SessionUser(ctx context.Context, token string, now time.Time) (*models.User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}

	var userID int
	var expires time.Time
	err := s.db.QueryRowContext(ctx, `SELECT user_id, expires_at FROM sessions WHERE token=?`, token).Scan(&userID, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !now.Before(expires) {
		return nil, fmt.Errorf("session expired: %w", ErrNotFound)
	}
	return s.GetUserByID(ctx, userID)
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token=?`, token)
	return err
}

// PurgeExpiredSessions removes sessions that expired before now
func (s *Store) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
