package tracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/takecare-ats/internal/database"
	"github.com/khrees2412/takecare-ats/internal/invite"
	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/internal/visibility"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	store    *database.Store
	admin    *models.User
	lead     *models.User
	priya    *models.User
	arjun    *models.User
	outsider *models.User
	clock    *time.Time
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := database.NewStore(db)
	clock := today
	svc := NewService(store, Options{
		Policy: visibility.DefaultPolicy(),
		Invite: invite.Options{AgencyName: "Takecare Manpower", InterviewTime: "10.30 AM", CountryCode: "91"},
		Now:    func() time.Time { return clock },
	})
	ctx := context.Background()

	admin, err := svc.AddUser(ctx, nil, NewUser{Email: "admin@takecare.in", Password: "secret", Username: "admin"})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)

	add := func(email, name string, role models.Role, reportTo string) *models.User {
		u, err := svc.AddUser(ctx, admin, NewUser{Email: email, Password: "pw", Username: name, Role: role, ReportTo: reportTo})
		require.NoError(t, err)
		return u
	}
	f := &fixture{
		svc:      svc,
		store:    store,
		admin:    admin,
		lead:     add("meena@takecare.in", "meena", models.RoleTeamLead, ""),
		priya:    add("priya@takecare.in", "priya", "recruiter", "meena"),
		arjun:    add("arjun@takecare.in", "arjun", models.RoleRecruiter, "meena"),
		outsider: add("sam@takecare.in", "sam", models.RoleRecruiter, "other"),
		clock:    &clock,
	}

	require.NoError(t, svc.SaveClientOpening(ctx, admin, models.ClientOpening{
		ClientName: "Acme Logistics", Position: "Picker", SRDays: 60,
		Address: "Plot 4", MapLink: "https://maps.example/a", ContactPerson: "Mr. Rao",
	}))
	return f
}

func (f *fixture) shortlist(t *testing.T, actor *models.User, name string) *models.CandidateRecord {
	t.Helper()
	rec, err := f.svc.Shortlist(context.Background(), actor, ShortlistInput{
		CandidateName: name,
		ContactNumber: "+91 98765 43210",
		ClientName:    "acme logistics",
		Position:      "picker",
	})
	require.NoError(t, err)
	return rec
}

func TestLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sess, user, err := f.svc.Login(ctx, "PRIYA@takecare.in", "pw")
	require.NoError(t, err)
	assert.Equal(t, "priya", user.Username)

	current, err := f.svc.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	_, _, err = f.svc.Login(ctx, "priya@takecare.in", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = f.svc.Login(ctx, "nobody@takecare.in", "pw")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, f.svc.Logout(ctx, sess.Token))
	_, err = f.svc.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionExpires(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sess, _, err := f.svc.Login(ctx, "priya@takecare.in", "pw")
	require.NoError(t, err)

	*f.clock = f.clock.Add(13 * time.Hour)
	_, err = f.svc.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAddUserRequiresAdmin(t *testing.T) {
	f := setup(t)
	_, err := f.svc.AddUser(context.Background(), f.priya, NewUser{Email: "x@y", Password: "pw", Username: "x", Role: models.RoleRecruiter})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.AddUser(context.Background(), f.admin, NewUser{Email: "x@y", Password: "pw", Username: "x", Role: "boss"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestShortlist(t *testing.T) {
	f := setup(t)

	first := f.shortlist(t, f.priya, "ravi  kumar")
	second := f.shortlist(t, f.arjun, "Sita Devi")

	assert.Equal(t, "E00001", first.ReferenceID)
	assert.Equal(t, "E00002", second.ReferenceID)
	assert.Equal(t, "Ravi Kumar", first.CandidateName)
	assert.Equal(t, "9876543210", first.ContactNumber)
	assert.Equal(t, "Acme Logistics", first.ClientName)
	assert.Equal(t, "Picker", first.Position)
	assert.Equal(t, models.StatusShortlisted, first.Status)
	assert.Equal(t, day(2026, 1, 20), first.ShortlistedDate)
	assert.Equal(t, day(2026, 1, 20), *first.InterviewDate)
	assert.Equal(t, "priya", first.HRName)
	assert.Nil(t, first.JoiningDate)
	assert.Nil(t, first.SRDate)
}

func TestShortlistValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Shortlist(ctx, f.priya, ShortlistInput{CandidateName: "Ravi", ClientName: "Acme Logistics", Position: "Picker"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.Shortlist(ctx, f.priya, ShortlistInput{
		CandidateName: "Ravi", ContactNumber: "9876543210", ClientName: "Acme Logistics", Position: "Chef",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "client master")
}

func TestUpdateStatusOnboarded(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rec := f.shortlist(t, f.priya, "Ravi Kumar")

	joining := day(2026, 1, 10)
	got, err := f.svc.UpdateStatus(ctx, f.priya, rec.ReferenceID, lifecycle.Transition{
		Status: models.StatusOnboarded,
		Date:   &joining,
	})
	require.NoError(t, err)
	assert.Equal(t, day(2026, 3, 11), *got.SRDate)

	stored, err := f.store.GetCandidate(ctx, rec.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnboarded, stored.Status)
	assert.Equal(t, joining, *stored.JoiningDate)
	assert.Equal(t, day(2026, 3, 11), *stored.SRDate)
}

func TestUpdateStatusMissingSRConfigLeavesRecord(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	legacy := models.CandidateRecord{
		ReferenceID:     "E00050",
		ShortlistedDate: day(2026, 1, 15),
		CandidateName:   "Old Entry",
		ContactNumber:   "9876543210",
		ClientName:      "Gone Client",
		Position:        "Helper",
		Status:          models.StatusSelected,
		HRName:          "priya",
	}
	require.NoError(t, f.store.InsertCandidate(ctx, &legacy))

	joining := day(2026, 1, 18)
	_, err := f.svc.UpdateStatus(ctx, f.priya, "E00050", lifecycle.Transition{
		Status:   models.StatusOnboarded,
		Date:     &joining,
		Feedback: strPtr("joined"),
	})
	assert.ErrorIs(t, err, lifecycle.ErrMissingSRConfig)

	stored, err := f.store.GetCandidate(ctx, "E00050")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSelected, stored.Status)
	assert.Nil(t, stored.JoiningDate)
	assert.Nil(t, stored.SRDate)
	assert.Empty(t, stored.Feedback)
}

func TestUpdateStatusInterviewedKeepsFeedback(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rec := f.shortlist(t, f.priya, "Ravi Kumar")

	chosen := day(2026, 1, 22)
	_, err := f.svc.UpdateStatus(ctx, f.priya, rec.ReferenceID, lifecycle.Transition{
		Status:   models.StatusInterviewed,
		Date:     &chosen,
		Feedback: strPtr("strong candidate"),
	})
	require.NoError(t, err)

	stored, err := f.store.GetCandidate(ctx, rec.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, "strong candidate", stored.Feedback)
	assert.Equal(t, chosen, *stored.InterviewDate)
	assert.Nil(t, stored.JoiningDate)
	assert.Nil(t, stored.SRDate)
}

func TestUpdateStatusScope(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rec := f.shortlist(t, f.priya, "Ravi Kumar")
	tr := lifecycle.Transition{Status: models.StatusHold}

	_, err := f.svc.UpdateStatus(ctx, f.arjun, rec.ReferenceID, tr)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.UpdateStatus(ctx, f.lead, rec.ReferenceID, tr)
	assert.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.admin, "e00001", lifecycle.Transition{Status: "Vanished"})
	assert.ErrorIs(t, err, lifecycle.ErrUnknownStatus)

	_, err = f.svc.UpdateStatus(ctx, f.admin, "E09999", tr)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	old := f.shortlist(t, f.priya, "Old Shortlist")
	f.shortlist(t, f.arjun, "Arjun Pick")
	f.shortlist(t, f.outsider, "Sam Pick")

	joining := day(2026, 1, 20)
	onboarded := f.shortlist(t, f.priya, "Onboarded Person")
	_, err := f.svc.UpdateStatus(ctx, f.priya, onboarded.ReferenceID, lifecycle.Transition{Status: models.StatusOnboarded, Date: &joining})
	require.NoError(t, err)

	*f.clock = today.AddDate(0, 0, 10)

	ids := func(recs []models.CandidateRecord) []string {
		out := []string{}
		for _, r := range recs {
			out = append(out, r.ReferenceID)
		}
		return out
	}

	mine, err := f.svc.Dashboard(ctx, f.priya, DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{onboarded.ReferenceID}, ids(mine))

	all, err := f.svc.Dashboard(ctx, f.priya, DashboardQuery{ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{old.ReferenceID, onboarded.ReferenceID}, ids(all))

	team, err := f.svc.Dashboard(ctx, f.lead, DashboardQuery{ShowHidden: true})
	require.NoError(t, err)
	assert.Len(t, team, 3)

	everyone, err := f.svc.Dashboard(ctx, f.admin, DashboardQuery{ShowHidden: true, Search: "sam"})
	require.NoError(t, err)
	assert.Len(t, everyone, 1)

	counts, err := f.svc.Stats(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.StatusShortlisted])
	assert.Equal(t, 1, counts[models.StatusOnboarded])
}

func TestInviteAndReminders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	rec := f.shortlist(t, f.priya, "Ravi Kumar")

	inv, err := f.svc.Invite(ctx, f.priya, rec.ReferenceID)
	require.NoError(t, err)
	assert.Contains(t, inv.Message, "Venue: Plot 4")
	assert.Contains(t, inv.Link, "https://wa.me/919876543210?text=")

	joining := day(2026, 1, 10)
	_, err = f.svc.UpdateStatus(ctx, f.priya, rec.ReferenceID, lifecycle.Transition{Status: models.StatusOnboarded, Date: &joining})
	require.NoError(t, err)

	due, err := f.svc.DueReminders(ctx, f.priya, 0)
	require.NoError(t, err)
	assert.Empty(t, due)

	*f.clock = day(2026, 3, 11)
	due, err = f.svc.DueReminders(ctx, f.priya, 0)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestImportCandidatesSkipsExisting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.shortlist(t, f.priya, "Ravi Kumar")

	records := []models.CandidateRecord{
		{ReferenceID: "E00001", ShortlistedDate: day(2026, 1, 1), CandidateName: "Dup", ContactNumber: "1",
			ClientName: "Acme Logistics", Position: "Picker", Status: models.StatusShortlisted, HRName: "priya"},
		{ReferenceID: "E00007", ShortlistedDate: day(2026, 1, 1), CandidateName: "New", ContactNumber: "1",
			ClientName: "Acme Logistics", Position: "Picker", Status: models.StatusHold, HRName: "arjun"},
	}

	_, err := f.svc.ImportCandidates(ctx, f.priya, records)
	assert.ErrorIs(t, err, ErrForbidden)

	res, err := f.svc.ImportCandidates(ctx, f.admin, records)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Skipped: 1}, res)

	next := f.shortlist(t, f.priya, "After Import")
	assert.Equal(t, "E00008", next.ReferenceID)
}

func TestClientMasterAdmin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	opening := models.ClientOpening{ClientName: "Bharat Foods", Position: "Packer", SRDays: 45}

	assert.ErrorIs(t, f.svc.SaveClientOpening(ctx, f.lead, opening), ErrForbidden)

	bad := opening
	bad.SRDays = -1
	assert.ErrorIs(t, f.svc.SaveClientOpening(ctx, f.admin, bad), ErrInvalidArgument)

	res, err := f.svc.ImportClients(ctx, f.admin, []models.ClientOpening{
		opening,
		{ClientName: "Acme Logistics", Position: "Picker", SRDays: 90},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	openings, err := f.svc.ClientOpenings(ctx)
	require.NoError(t, err)
	require.Len(t, openings, 2)

	days, err := f.store.SRDays(ctx, "ACME LOGISTICS", "picker")
	require.NoError(t, err)
	assert.Equal(t, 90, days)
}

func TestExportAndListUsersScope(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.shortlist(t, f.priya, "Ravi Kumar")
	f.shortlist(t, f.outsider, "Sunil Das")

	mine, err := f.svc.Export(ctx, f.priya)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ravi Kumar", mine[0].CandidateName)

	all, err := f.svc.Export(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListUsers(ctx, f.priya)
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := f.svc.ListUsers(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestImportCandidatesCompletesSRDate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	joining := day(2026, 1, 10)
	staleSR := day(2020, 1, 1)

	base := func(id string, status models.Status, client string) models.CandidateRecord {
		return models.CandidateRecord{ReferenceID: id, ShortlistedDate: day(2026, 1, 1), CandidateName: "Ravi",
			ContactNumber: "1", ClientName: client, Position: "Picker", Status: status, HRName: "priya"}
	}

	onboarded := base("E00001", models.StatusOnboarded, "Acme Logistics")
	onboarded.JoiningDate = &joining

	noJoining := base("E00002", models.StatusOnboarded, "Acme Logistics")

	shortlisted := base("E00003", models.StatusShortlisted, "Acme Logistics")
	shortlisted.JoiningDate = &joining
	shortlisted.SRDate = &staleSR

	unknownClient := base("E00004", models.StatusOnboarded, "Nowhere Ltd")
	unknownClient.JoiningDate = &joining

	res, err := f.svc.ImportCandidates(ctx, f.admin, []models.CandidateRecord{onboarded, noJoining, shortlisted, unknownClient})
	assert.Equal(t, ImportResult{Imported: 1, Rejected: 3}, res)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, lifecycle.ErrMissingSRConfig)
	assert.ErrorContains(t, err, "E00002")
	assert.ErrorContains(t, err, "E00003")

	stored, err := f.store.GetCandidate(ctx, "E00001")
	require.NoError(t, err)
	require.NotNil(t, stored.SRDate)
	assert.Equal(t, day(2026, 3, 11), *stored.SRDate)

	_, err = f.store.GetCandidate(ctx, "E00003")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
