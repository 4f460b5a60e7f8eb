package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

var (
	ErrUnknownStatus   = errors.New("unknown status")
	ErrDateRequired    = errors.New("date required for this status")
	ErrMissingSRConfig = errors.New("missing SR configuration")
)

// Transition is a requested status change. Date is required when moving to
// Interviewed or Onboarded and ignored otherwise. A nil Feedback leaves the
// existing feedback untouched.
type Transition struct {
	Status   models.Status
	Date     *time.Time
	Feedback *string
}

// Apply returns rec with the transition applied. On error the returned
// record is rec unchanged.
//
// Moving to Interviewed overwrites interview_date with the supplied date.
// Moving to Onboarded sets joining_date and derives sr_date from the client
// master. Every other status only touches status and feedback.
func Apply(ctx context.Context, rec models.CandidateRecord, tr Transition, lookup SRLookup) (models.CandidateRecord, error) {
	if !tr.Status.Valid() {
		return rec, fmt.Errorf("%w: %q", ErrUnknownStatus, tr.Status)
	}

	next := rec
	switch tr.Status {
	case models.StatusInterviewed:
		if tr.Date == nil {
			return rec, fmt.Errorf("%w: %s", ErrDateRequired, tr.Status)
		}
		next.InterviewDate = models.DayPtr(*tr.Date)

	case models.StatusOnboarded:
		if tr.Date == nil {
			return rec, fmt.Errorf("%w: %s", ErrDateRequired, tr.Status)
		}
		joining := models.Day(*tr.Date)
		sr, err := SRDate(ctx, lookup, rec.ClientName, rec.Position, joining)
		if err != nil {
			if errors.Is(err, ErrLookupNotFound) {
				return rec, fmt.Errorf("%w: %w", ErrMissingSRConfig, err)
			}
			return rec, err
		}
		next.JoiningDate = &joining
		next.SRDate = &sr
	}

	next.Status = tr.Status
	if tr.Feedback != nil {
		next.Feedback = *tr.Feedback
	}
	return next, nil
}

// RequiresDate reports whether moving to s needs a caller-supplied date
func RequiresDate(s models.Status) bool {
	return s == models.StatusInterviewed || s == models.StatusOnboarded
}
