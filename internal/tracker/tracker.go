package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/khrees2412/takecare-ats/internal/invite"
	"github.com/khrees2412/takecare-ats/internal/visibility"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

var (
	ErrUnauthorized    = errors.New("incorrect username or password")
	ErrForbidden       = errors.New("not permitted for this role")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Store is the record store the tracker reads and writes
type Store interface {
	CreateCandidate(ctx context.Context, rec *models.CandidateRecord) error
	InsertCandidate(ctx context.Context, rec *models.CandidateRecord) error
	GetCandidate(ctx context.Context, referenceID string) (*models.CandidateRecord, error)
	UpdateCandidate(ctx context.Context, rec *models.CandidateRecord) error
	ListCandidates(ctx context.Context) ([]models.CandidateRecord, error)

	UpsertClientOpening(ctx context.Context, o *models.ClientOpening) error
	GetClientOpening(ctx context.Context, clientName, position string) (*models.ClientOpening, error)
	ListClientOpenings(ctx context.Context) ([]models.ClientOpening, error)
	SRDays(ctx context.Context, clientName, position string) (int, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
	ListTeam(ctx context.Context, lead string) ([]string, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	CreateSession(ctx context.Context, userID int, now time.Time, ttl time.Duration) (*models.Session, error)
	SessionUser(ctx context.Context, token string, now time.Time) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Options configures a Service
type Options struct {
	Policy     visibility.Policy
	Invite     invite.Options
	SessionTTL time.Duration
	Now        func() time.Time
}

// Service applies the candidate rules on top of a Store. Every call takes
// the acting user explicitly.
type Service struct {
	store      Store
	policy     visibility.Policy
	invite     invite.Options
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(store Store, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	return &Service{
		store:      store,
		policy:     opts.Policy,
		invite:     opts.Invite,
		sessionTTL: opts.SessionTTL,
		now:        opts.Now,
	}
}

// Now is the service clock
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) team(ctx context.Context, actor *models.User) ([]string, error) {
	if actor.Role != models.RoleTeamLead {
		return nil, nil
	}
	return s.store.ListTeam(ctx, actor.Username)
}

func (s *Service) scoped(ctx context.Context, actor *models.User) ([]models.CandidateRecord, error) {
	records, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	team, err := s.team(ctx, actor)
	if err != nil {
		return nil, err
	}
	return visibility.Scope(records, *actor, team), nil
}

func requireAdmin(actor *models.User) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
