package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/takecare-ats/internal/database"
	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/internal/logger"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

// SaveClientOpening adds or replaces a client master row. Admin only.
func (s *Service) SaveClientOpening(ctx context.Context, actor *models.User, o models.ClientOpening) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	o.ClientName = strings.TrimSpace(o.ClientName)
	o.Position = strings.TrimSpace(o.Position)
	if o.ClientName == "" || o.Position == "" {
		return fmt.Errorf("%w: client and position are required", ErrInvalidArgument)
	}
	if o.SRDays < 0 {
		return fmt.Errorf("%w: sr days must not be negative", ErrInvalidArgument)
	}
	if err := s.store.UpsertClientOpening(ctx, &o); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Client opening saved", "client", o.ClientName, "position", o.Position, "sr_days", o.SRDays)
	return nil
}

func (s *Service) ClientOpenings(ctx context.Context) ([]models.ClientOpening, error) {
	return s.store.ListClientOpenings(ctx)
}

// ImportResult summarises a sheet import
type ImportResult struct {
	Imported int
	Skipped  int
	Rejected int
}

// ImportClients upserts every opening. Admin only.
func (s *Service) ImportClients(ctx context.Context, actor *models.User, openings []models.ClientOpening) (ImportResult, error) {
	var res ImportResult
	for _, o := range openings {
		if err := s.SaveClientOpening(ctx, actor, o); err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

// ImportCandidates stores records under their existing reference IDs.
// Records already present are skipped, never overwritten. A joined record
// with no SR date gets one from the client master; when the opening is
// missing the record is rejected and reported in the returned error, and
// the rest of the import continues. Admin only.
func (s *Service) ImportCandidates(ctx context.Context, actor *models.User, records []models.CandidateRecord) (ImportResult, error) {
	var res ImportResult
	if err := requireAdmin(actor); err != nil {
		return res, err
	}

	var rejected []error
	for i := range records {
		rec := &records[i]
		if err := s.completeSRDate(ctx, rec); err != nil {
			rejected = append(rejected, fmt.Errorf("%s: %w", rec.ReferenceID, err))
			res.Rejected++
			continue
		}

		err := s.store.InsertCandidate(ctx, rec)
		if errors.Is(err, database.ErrDuplicate) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Imported++
	}
	logger.InfoContext(ctx, "Candidates imported",
		"imported", res.Imported, "skipped", res.Skipped, "rejected", res.Rejected)
	return res, errors.Join(rejected...)
}

func (s *Service) completeSRDate(ctx context.Context, rec *models.CandidateRecord) error {
	if !rec.Status.Joined() {
		if rec.JoiningDate != nil || rec.SRDate != nil {
			return fmt.Errorf("%w: joining and sr dates are only valid once onboarded", ErrInvalidArgument)
		}
		return nil
	}
	if rec.Status == models.StatusOnboarded && rec.JoiningDate == nil {
		return fmt.Errorf("%w: onboarded record has no joining date", ErrInvalidArgument)
	}
	if rec.JoiningDate == nil || rec.SRDate != nil {
		return nil
	}
	sr, err := lifecycle.SRDate(ctx, s.store, rec.ClientName, rec.Position, *rec.JoiningDate)
	if err != nil {
		return fmt.Errorf("%w: %w", lifecycle.ErrMissingSRConfig, err)
	}
	rec.SRDate = &sr
	return nil
}

// Export returns every record in the actor's scope, hidden ones included
func (s *Service) Export(ctx context.Context, actor *models.User) ([]models.CandidateRecord, error) {
	return s.scoped(ctx, actor)
}
