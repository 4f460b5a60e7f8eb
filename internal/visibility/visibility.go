package visibility

import (
	"time"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

// Policy holds the age windows, in days, after which records drop off the
// active dashboard
type Policy struct {
	ShortlistDays int
	ExitDays      int
	PipelineDays  int
}

// DefaultPolicy is the dashboard's standard behaviour
func DefaultPolicy() Policy {
	return Policy{
		ShortlistDays: 7,
		ExitDays:      3,
		PipelineDays:  30,
	}
}

// Visible decides whether rec still belongs in the active view at now.
//
//   - Shortlisted ages from shortlisted_date.
//   - Left and Not Joined age from shortlisted_date.
//   - Interviewed, Selected, Hold and Rejected age from interview_date,
//     or shortlisted_date when no interview date was recorded.
//   - Onboarded and Project Success never age out.
func (p Policy) Visible(rec models.CandidateRecord, now time.Time) bool {
	switch rec.Status {
	case models.StatusOnboarded, models.StatusProjectSuccess:
		return true
	case models.StatusShortlisted:
		return !olderThan(rec.ShortlistedDate, p.ShortlistDays, now)
	case models.StatusLeft, models.StatusNotJoined:
		return !olderThan(rec.ShortlistedDate, p.ExitDays, now)
	case models.StatusInterviewed, models.StatusSelected, models.StatusHold, models.StatusRejected:
		ref := rec.ShortlistedDate
		if rec.InterviewDate != nil {
			ref = *rec.InterviewDate
		}
		return !olderThan(ref, p.PipelineDays, now)
	}
	return true
}

// Filter returns the records visible at now, preserving order. The input
// slice is not modified.
func (p Policy) Filter(records []models.CandidateRecord, now time.Time) []models.CandidateRecord {
	out := make([]models.CandidateRecord, 0, len(records))
	for _, rec := range records {
		if p.Visible(rec, now) {
			out = append(out, rec)
		}
	}
	return out
}

// olderThan compares calendar days, not elapsed hours, so the clock's zone
// never shifts the window
func olderThan(d time.Time, days int, now time.Time) bool {
	if d.IsZero() {
		return false
	}
	return models.DaysBetween(d, now) > days
}
