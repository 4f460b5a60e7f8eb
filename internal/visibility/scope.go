package visibility

import (
	"strings"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

// Scope narrows records to those the user may see. Recruiters see their own
// records, team leads also see their direct reports', admins see everything.
// team holds the usernames reporting to user and is ignored for other roles.
func Scope(records []models.CandidateRecord, user models.User, team []string) []models.CandidateRecord {
	if user.Role == models.RoleAdmin {
		return records
	}

	owners := map[string]bool{strings.ToLower(user.Username): true}
	if user.Role == models.RoleTeamLead {
		for _, name := range team {
			owners[strings.ToLower(name)] = true
		}
	}

	out := make([]models.CandidateRecord, 0, len(records))
	for _, rec := range records {
		if owners[strings.ToLower(rec.HRName)] {
			out = append(out, rec)
		}
	}
	return out
}

// CanAccess reports whether rec falls inside the user's scope
func CanAccess(rec models.CandidateRecord, user models.User, team []string) bool {
	return len(Scope([]models.CandidateRecord{rec}, user, team)) == 1
}
