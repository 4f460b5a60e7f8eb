package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

const userColumns = `id, email, password_hash, username, role, report_to, created_at`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &role, &u.ReportTo, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (email, password_hash, username, role, report_to) VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, u.Email, u.PasswordHash, u.Username, string(u.Role), u.ReportTo)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
		}
		return err
	}
	id, _ := result.LastInsertId()
	u.ID = int(id)
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=?`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=?`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, err
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// ListTeam returns the usernames reporting directly to lead
func (s *Store) ListTeam(ctx context.Context, lead string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username FROM users WHERE report_to=? COLLATE NOCASE ORDER BY username`, lead)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	team := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		team = append(team, name)
	}
	return team, rows.Err()
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
