package visibility

import (
	"testing"
	"time"

	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 10, 17, 11, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return models.Day(now.AddDate(0, 0, -n))
}

func record(id string, status models.Status, shortlistedAgo int) models.CandidateRecord {
	return models.CandidateRecord{
		ReferenceID:     id,
		ShortlistedDate: daysAgo(shortlistedAgo),
		Status:          status,
		HRName:          "priya",
	}
}

func TestVisible(t *testing.T) {
	p := DefaultPolicy()
	interviewed := func(ago int) *time.Time { d := daysAgo(ago); return &d }

	tests := []struct {
		name string
		rec  models.CandidateRecord
		want bool
	}{
		{"shortlisted 5 days", record("E1", models.StatusShortlisted, 5), true},
		{"shortlisted 10 days", record("E1", models.StatusShortlisted, 10), false},
		{"left 2 days", record("E1", models.StatusLeft, 2), true},
		{"left 4 days", record("E1", models.StatusLeft, 4), false},
		{"not joined 4 days", record("E1", models.StatusNotJoined, 4), false},
		{"selected 20 days", record("E1", models.StatusSelected, 20), true},
		{"rejected 31 days", record("E1", models.StatusRejected, 31), false},
		{"hold 45 days", record("E1", models.StatusHold, 45), false},
		{"onboarded 400 days", record("E1", models.StatusOnboarded, 400), true},
		{"project success 400 days", record("E1", models.StatusProjectSuccess, 400), true},
		{
			"interviewed recently after old shortlist",
			func() models.CandidateRecord {
				r := record("E1", models.StatusInterviewed, 60)
				r.InterviewDate = interviewed(10)
				return r
			}(),
			true,
		},
		{
			"interviewed long ago",
			func() models.CandidateRecord {
				r := record("E1", models.StatusInterviewed, 60)
				r.InterviewDate = interviewed(40)
				return r
			}(),
			false,
		},
		{"unknown status stays", record("E1", models.Status("Legacy"), 400), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Visible(tt.rec, now))
		})
	}
}

func TestVisibleUsesCalendarDaysInClockZone(t *testing.T) {
	p := DefaultPolicy()
	newYork := time.FixedZone("EST", -5*60*60)
	kolkata := time.FixedZone("IST", 5*60*60+30*60)

	tests := []struct {
		name        string
		shortlisted time.Time
		now         time.Time
		want        bool
	}{
		{
			"new york evening, 6 days",
			time.Date(2026, 10, 1, 10, 0, 0, 0, newYork),
			time.Date(2026, 10, 7, 21, 0, 0, 0, newYork),
			true,
		},
		{
			"new york late evening, exactly 7 days",
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 8, 23, 30, 0, 0, newYork),
			true,
		},
		{
			"new york, 8 days",
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 9, 0, 30, 0, 0, newYork),
			false,
		},
		{
			"kolkata just after midnight, 8 days",
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 9, 0, 15, 0, 0, kolkata),
			false,
		},
		{
			"kolkata late evening, exactly 7 days",
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 8, 23, 45, 0, 0, kolkata),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.CandidateRecord{ReferenceID: "E00001", Status: models.StatusShortlisted, ShortlistedDate: tt.shortlisted}
			assert.Equal(t, tt.want, p.Visible(rec, tt.now))
		})
	}
}

func TestVisibleBoundaries(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.Visible(record("E1", models.StatusShortlisted, 7), now))
	assert.False(t, p.Visible(record("E1", models.StatusShortlisted, 8), now))
	assert.True(t, p.Visible(record("E1", models.StatusLeft, 3), now))
	assert.False(t, p.Visible(record("E1", models.StatusLeft, 4), now))
	assert.True(t, p.Visible(record("E1", models.StatusHold, 30), now))
	assert.False(t, p.Visible(record("E1", models.StatusHold, 31), now))
}

func TestFilterIsIdempotent(t *testing.T) {
	records := []models.CandidateRecord{
		record("E00001", models.StatusShortlisted, 10),
		record("E00002", models.StatusShortlisted, 5),
		record("E00003", models.StatusOnboarded, 400),
		record("E00004", models.StatusLeft, 5),
	}
	p := DefaultPolicy()

	first := p.Filter(records, now)
	second := p.Filter(records, now)

	assert.Equal(t, first, second)
	assert.Len(t, records, 4)
	ids := []string{}
	for _, r := range first {
		ids = append(ids, r.ReferenceID)
	}
	assert.Equal(t, []string{"E00002", "E00003"}, ids)
}

func TestFilterReevaluatesAfterStatusChange(t *testing.T) {
	rec := record("E00001", models.StatusShortlisted, 10)
	p := DefaultPolicy()
	assert.Empty(t, p.Filter([]models.CandidateRecord{rec}, now))

	rec.Status = models.StatusOnboarded
	assert.Len(t, p.Filter([]models.CandidateRecord{rec}, now), 1)
}

func TestScope(t *testing.T) {
	records := []models.CandidateRecord{
		{ReferenceID: "E00001", HRName: "priya"},
		{ReferenceID: "E00002", HRName: "arjun"},
		{ReferenceID: "E00003", HRName: "meena"},
	}

	recruiter := models.User{Username: "priya", Role: models.RoleRecruiter}
	assert.Len(t, Scope(records, recruiter, []string{"arjun"}), 1)

	lead := models.User{Username: "meena", Role: models.RoleTeamLead}
	got := Scope(records, lead, []string{"Arjun"})
	assert.Len(t, got, 2)
	assert.Equal(t, "E00002", got[0].ReferenceID)
	assert.Equal(t, "E00003", got[1].ReferenceID)

	admin := models.User{Username: "root", Role: models.RoleAdmin}
	assert.Len(t, Scope(records, admin, nil), 3)

	assert.True(t, CanAccess(records[0], recruiter, nil))
	assert.False(t, CanAccess(records[1], recruiter, nil))
}

func TestSearch(t *testing.T) {
	records := []models.CandidateRecord{
		{ReferenceID: "E00001", CandidateName: "Ravi Kumar", ClientName: "Acme", Status: models.StatusShortlisted},
		{ReferenceID: "E00002", CandidateName: "Sita Devi", ClientName: "Beta Foods", Status: models.StatusOnboarded},
	}

	assert.Len(t, Search(records, ""), 2)
	assert.Len(t, Search(records, "  "), 2)
	assert.Equal(t, "E00002", Search(records, "beta")[0].ReferenceID)
	assert.Equal(t, "E00001", Search(records, "RAVI")[0].ReferenceID)
	assert.Len(t, Search(records, "onboarded"), 1)
	assert.Empty(t, Search(records, "nobody"))
}
