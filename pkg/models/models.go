package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day format used wherever dates are persisted as text
const DateLayout = "02-01-2006"

// Status is the lifecycle state of a candidate record
type Status string

const (
	StatusShortlisted    Status = "Shortlisted"
	StatusInterviewed    Status = "Interviewed"
	StatusSelected       Status = "Selected"
	StatusHold           Status = "Hold"
	StatusRejected       Status = "Rejected"
	StatusOnboarded      Status = "Onboarded"
	StatusLeft           Status = "Left"
	StatusNotJoined      Status = "Not Joined"
	StatusProjectSuccess Status = "Project Success"
)

// Statuses lists every status in lifecycle order
var Statuses = []Status{
	StatusShortlisted,
	StatusInterviewed,
	StatusSelected,
	StatusHold,
	StatusRejected,
	StatusOnboarded,
	StatusLeft,
	StatusNotJoined,
	StatusProjectSuccess,
}

// ParseStatus matches s against the known statuses, ignoring case and
// surrounding whitespace
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Joined reports whether a record in status s has been through onboarding,
// so may carry a joining date and an SR date
func (s Status) Joined() bool {
	switch s {
	case StatusOnboarded, StatusLeft, StatusNotJoined, StatusProjectSuccess:
		return true
	}
	return false
}

// Role controls which records a user can see
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleTeamLead  Role = "TL"
	RoleRecruiter Role = "RECRUITER"
)

// ParseRole accepts a role name in any case
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleTeamLead:
		return RoleTeamLead, true
	case RoleRecruiter:
		return RoleRecruiter, true
	}
	return "", false
}

// CandidateRecord is one shortlisted candidate against one client opening
type CandidateRecord struct {
	ReferenceID     string     `json:"reference_id"`
	ShortlistedDate time.Time  `json:"shortlisted_date"`
	CandidateName   string     `json:"candidate_name"`
	ContactNumber   string     `json:"contact_number"`
	ClientName      string     `json:"client_name"`
	Position        string     `json:"position"`
	InterviewDate   *time.Time `json:"interview_date"`
	Status          Status     `json:"status"`
	HRName          string     `json:"hr_name"`
	JoiningDate     *time.Time `json:"joining_date"`
	SRDate          *time.Time `json:"sr_date"`
	Feedback        string     `json:"feedback"`
}

// ClientOpening is a client master row keyed by client name and position
type ClientOpening struct {
	ClientName    string `json:"client_name"`
	Position      string `json:"position"`
	SRDays        int    `json:"sr_days"`
	Address       string `json:"address"`
	MapLink       string `json:"map_link"`
	ContactPerson string `json:"contact_person"`
}

// User is a member of the HR staff
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	ReportTo     string    `json:"report_to"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a logged-in user's token
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Day labels the calendar day of t, read in t's own location, as midnight UTC
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b, each read in its own location
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// DayPtr returns a pointer to Day(t)
func DayPtr(t time.Time) *time.Time {
	d := Day(t)
	return &d
}

// ParseDate parses a DD-MM-YYYY date. Empty input yields nil without error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected DD-MM-YYYY", s)
	}
	return &t, nil
}

// FormatDate renders a nullable date as DD-MM-YYYY, or "" when nil
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
