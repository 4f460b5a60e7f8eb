package reminder

import (
	"sort"
	"time"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

// Due returns onboarded records whose SR date falls on or before today plus
// within days, earliest first. Overdue follow-ups are included.
func Due(records []models.CandidateRecord, today time.Time, within int) []models.CandidateRecord {
	limit := models.Day(today).AddDate(0, 0, within)

	due := []models.CandidateRecord{}
	for _, rec := range records {
		if rec.Status != models.StatusOnboarded || rec.SRDate == nil {
			continue
		}
		if !rec.SRDate.After(limit) {
			due = append(due, rec)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].SRDate.Before(*due[j].SRDate)
	})
	return due
}
