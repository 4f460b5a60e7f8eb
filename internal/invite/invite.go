package invite

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Options carries the agency-wide pieces of the invite
type Options struct {
	AgencyName    string
	InterviewTime string
	CountryCode   string
}

// Message builds the interview invite text for rec at the given opening.
// The date is the record's interview (commitment) date.
func Message(rec models.CandidateRecord, opening models.ClientOpening, opts Options) string {
	team := opts.AgencyName
	if fields := strings.Fields(opts.AgencyName); len(fields) > 0 {
		team = fields[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n", rec.CandidateName)
	b.WriteString("Congratulations! Direct Interview Invite.\n\n")
	fmt.Fprintf(&b, "Position: %s\n", rec.Position)
	fmt.Fprintf(&b, "Ref: %s\n", opts.AgencyName)
	fmt.Fprintf(&b, "Date: %s\n", models.FormatDate(rec.InterviewDate))
	fmt.Fprintf(&b, "Time: %s\n", opts.InterviewTime)
	fmt.Fprintf(&b, "Venue: %s\n", opening.Address)
	fmt.Fprintf(&b, "Map: %s\n", opening.MapLink)
	fmt.Fprintf(&b, "Contact: %s\n\n", opening.ContactPerson)
	b.WriteString("Please let me know when you arrive. All the best!\n\n")
	b.WriteString("Regards,\n")
	fmt.Fprintf(&b, "%s\n", rec.HRName)
	fmt.Fprintf(&b, "%s HR Team", team)
	return b.String()
}

// NormalizePhone reduces phone to its local digits, dropping formatting,
// a leading country code or a trunk 0
func NormalizePhone(phone, countryCode string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) > 10 && countryCode != "" && strings.HasPrefix(d, countryCode) {
		d = d[len(countryCode):]
	}
	if len(d) > 10 && strings.HasPrefix(d, "0") {
		d = strings.TrimLeft(d, "0")
	}
	if len(d) < 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return d, nil
}

// Link returns the wa.me click-to-chat URL carrying msg
func Link(phone, msg string, opts Options) (string, error) {
	local, err := NormalizePhone(phone, opts.CountryCode)
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s%s?text=%s", opts.CountryCode, local, text), nil
}
