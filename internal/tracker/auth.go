package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/takecare-ats/internal/database"
	"github.com/khrees2412/takecare-ats/internal/logger"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// NewUser is the input for AddUser
type NewUser struct {
	Email    string
	Password string
	Username string
	Role     models.Role
	ReportTo string
}

// Login matches email and password and opens a session. Unknown email and
// wrong password fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		logger.WarnContext(ctx, "Login failed", "email", email, "reason", "unknown email")
		return nil, nil, ErrUnauthorized
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.WarnContext(ctx, "Login failed", "email", email, "reason", "password mismatch")
		return nil, nil, ErrUnauthorized
	}

	now := s.now()
	if _, err := s.store.PurgeExpiredSessions(ctx, now); err != nil {
		logger.WarnContext(ctx, "Failed to purge expired sessions", "error", err)
	}

	sess, err := s.store.CreateSession(ctx, user.ID, now, s.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoContext(ctx, "User logged in", "username", user.Username, "role", user.Role)
	return sess, user, nil
}

// CurrentUser resolves a session token
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	user, err := s.store.SessionUser(ctx, strings.TrimSpace(token), s.now())
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("not logged in: %w", ErrUnauthorized)
	}
	return user, err
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, strings.TrimSpace(token))
}

// AddUser creates a staff account. Only admins may add users, except for
// the very first account, which is always an admin.
func (s *Service) AddUser(ctx context.Context, actor *models.User, in NewUser) (*models.User, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		in.Role = models.RoleAdmin
	} else if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email, username and password are required", ErrInvalidArgument)
	}
	role, ok := models.ParseRole(string(in.Role))
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Username:     in.Username,
		Role:         role,
		ReportTo:     strings.TrimSpace(in.ReportTo),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "User created", "username", user.Username, "role", user.Role)
	return user, nil
}

// ListUsers is admin only
func (s *Service) ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}
