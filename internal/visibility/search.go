package visibility

import (
	"strings"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

// Search keeps records where query appears, case-insensitively, in any
// displayed field. An empty query matches everything.
func Search(records []models.CandidateRecord, query string) []models.CandidateRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	out := make([]models.CandidateRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(haystack(rec), q) {
			out = append(out, rec)
		}
	}
	return out
}

func haystack(rec models.CandidateRecord) string {
	fields := []string{
		rec.ReferenceID,
		models.FormatDate(&rec.ShortlistedDate),
		rec.CandidateName,
		rec.ContactNumber,
		rec.ClientName,
		rec.Position,
		models.FormatDate(rec.InterviewDate),
		string(rec.Status),
		rec.HRName,
		models.FormatDate(rec.JoiningDate),
		models.FormatDate(rec.SRDate),
		rec.Feedback,
	}
	return strings.ToLower(strings.Join(fields, "\x00"))
}
