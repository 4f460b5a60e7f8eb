package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/khrees2412/takecare-ats/internal/database"
	"github.com/khrees2412/takecare-ats/internal/invite"
	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/internal/logger"
	"github.com/khrees2412/takecare-ats/internal/reminder"
	"github.com/khrees2412/takecare-ats/internal/sheet"
	"github.com/khrees2412/takecare-ats/internal/visibility"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

// ShortlistInput is the new-candidate form
type ShortlistInput struct {
	CandidateName  string
	ContactNumber  string
	ClientName     string
	Position       string
	CommitmentDate *time.Time
	Feedback       string
}

// Invitation is a constructed WhatsApp interview invite
type Invitation struct {
	Message string
	Link    string
}

// Shortlist records a new candidate against an existing client opening and
// returns the stored record with its allocated reference ID
func (s *Service) Shortlist(ctx context.Context, actor *models.User, in ShortlistInput) (*models.CandidateRecord, error) {
	name := sheet.NormalizeName(in.CandidateName)
	client := strings.TrimSpace(in.ClientName)
	position := strings.TrimSpace(in.Position)
	if name == "" || client == "" || position == "" || strings.TrimSpace(in.ContactNumber) == "" {
		return nil, fmt.Errorf("%w: candidate name, contact number, client and position are required", ErrInvalidArgument)
	}

	phone, err := invite.NormalizePhone(in.ContactNumber, s.invite.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	opening, err := s.store.GetClientOpening(ctx, client, position)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: no opening for %s / %s in client master", ErrInvalidArgument, client, position)
	}
	if err != nil {
		return nil, err
	}

	today := models.Day(s.now())
	commitment := today
	if in.CommitmentDate != nil {
		commitment = models.Day(*in.CommitmentDate)
	}

	rec := &models.CandidateRecord{
		ShortlistedDate: today,
		CandidateName:   name,
		ContactNumber:   phone,
		ClientName:      opening.ClientName,
		Position:        opening.Position,
		InterviewDate:   &commitment,
		Status:          models.StatusShortlisted,
		HRName:          actor.Username,
		Feedback:        strings.TrimSpace(in.Feedback),
	}
	if err := s.store.CreateCandidate(ctx, rec); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Candidate shortlisted",
		"reference_id", rec.ReferenceID, "client", rec.ClientName, "position", rec.Position, "hr", rec.HRName)
	return rec, nil
}

// Get loads one record the actor is allowed to see
func (s *Service) Get(ctx context.Context, actor *models.User, referenceID string) (*models.CandidateRecord, error) {
	rec, err := s.store.GetCandidate(ctx, strings.ToUpper(strings.TrimSpace(referenceID)))
	if err != nil {
		return nil, err
	}
	team, err := s.team(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !visibility.CanAccess(*rec, *actor, team) {
		return nil, fmt.Errorf("candidate %s: %w", referenceID, ErrForbidden)
	}
	return rec, nil
}

// UpdateStatus runs a transition through the lifecycle rules and persists
// the result. A failed transition leaves the stored record untouched.
func (s *Service) UpdateStatus(ctx context.Context, actor *models.User, referenceID string, tr lifecycle.Transition) (*models.CandidateRecord, error) {
	rec, err := s.Get(ctx, actor, referenceID)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Apply(ctx, *rec, tr, s.store)
	if err != nil {
		logger.WarnContext(ctx, "Status change rejected",
			"reference_id", rec.ReferenceID, "status", tr.Status, "error", err)
		return nil, err
	}

	if err := s.store.UpdateCandidate(ctx, &next); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Status changed",
		"reference_id", next.ReferenceID, "from", rec.Status, "to", next.Status, "by", actor.Username)
	return &next, nil
}

// Invite builds the interview invite for an existing record
func (s *Service) Invite(ctx context.Context, actor *models.User, referenceID string) (*Invitation, error) {
	rec, err := s.Get(ctx, actor, referenceID)
	if err != nil {
		return nil, err
	}
	return s.BuildInvite(ctx, rec)
}

// BuildInvite assembles the message and wa.me link for rec
func (s *Service) BuildInvite(ctx context.Context, rec *models.CandidateRecord) (*Invitation, error) {
	opening, err := s.store.GetClientOpening(ctx, rec.ClientName, rec.Position)
	if err != nil {
		return nil, err
	}
	msg := invite.Message(*rec, *opening, s.invite)
	link, err := invite.Link(rec.ContactNumber, msg, s.invite)
	if err != nil {
		return nil, err
	}
	return &Invitation{Message: msg, Link: link}, nil
}

// DashboardQuery selects what the dashboard shows
type DashboardQuery struct {
	Search     string
	ShowHidden bool
}

// Dashboard returns the actor's active records: role scope, then the
// visibility filter, then search
func (s *Service) Dashboard(ctx context.Context, actor *models.User, q DashboardQuery) ([]models.CandidateRecord, error) {
	records, err := s.scoped(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !q.ShowHidden {
		records = s.policy.Filter(records, s.now())
	}
	return visibility.Search(records, q.Search), nil
}

// Stats counts the actor's records by status, hidden ones included
func (s *Service) Stats(ctx context.Context, actor *models.User) (map[models.Status]int, error) {
	records, err := s.scoped(ctx, actor)
	if err != nil {
		return nil, err
	}
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, rec := range records {
		counts[rec.Status]++
	}
	return counts, nil
}

// DueReminders lists SR follow-ups due within the given number of days
func (s *Service) DueReminders(ctx context.Context, actor *models.User, within int) ([]models.CandidateRecord, error) {
	records, err := s.scoped(ctx, actor)
	if err != nil {
		return nil, err
	}
	return reminder.Due(records, s.now(), within), nil
}
