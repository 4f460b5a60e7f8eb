// Package sheet maps the legacy spreadsheet exports (ATS_Data and
// Client_Master tabs saved as CSV) to typed records. Columns are found by
// header name, so reordered or padded headers still load.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/khrees2412/takecare-ats/internal/refid"
	"github.com/khrees2412/takecare-ats/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CandidateHeaders is the ATS_Data column order used on export
var CandidateHeaders = []string{
	"Reference_ID", "Shortlisted Date", "Candidate Name", "Contact Number", "Client Name",
	"Job Title", "Interview Date", "Status", "HR Name", "Joining Date", "SR Date", "Feedback",
}

// ClientHeaders is the Client_Master column order
var ClientHeaders = []string{
	"Client Name", "Position", "SR Days", "Address", "Map Link", "Contact Person",
}

// aliases maps a canonical column to the header spellings seen in exports
var aliases = map[string][]string{
	"position": {"position", "job title"},
	"ref":      {"reference id", "ref id"},
}

// RowError reports a rejected row by its 1-based line number
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var titleCaser = cases.Title(language.English)

// NormalizeName trims, collapses inner whitespace and title-cases a
// person's name
func NormalizeName(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

func headerKey(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

type columns map[string]int

func indexHeaders(header []string) columns {
	cols := columns{}
	for i, h := range header {
		cols[headerKey(h)] = i
	}
	for canonical, names := range aliases {
		for _, n := range names {
			if i, ok := cols[n]; ok {
				cols[canonical] = i
				break
			}
		}
	}
	return cols
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := c[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReadCandidates parses an ATS_Data export. Valid rows are returned even
// when other rows fail; the error joins every RowError.
func ReadCandidates(r io.Reader) ([]models.CandidateRecord, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := indexHeaders(rows[0])
	if err := cols.require("ref", "shortlisted date", "candidate name", "client name", "position", "status", "hr name"); err != nil {
		return nil, err
	}

	var records []models.CandidateRecord
	var errs []error
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec, err := candidateFromRow(cols, row)
		if err != nil {
			errs = append(errs, &RowError{Line: i + 2, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

func candidateFromRow(cols columns, row []string) (models.CandidateRecord, error) {
	rec := models.CandidateRecord{
		ReferenceID:   cols.get(row, "ref"),
		CandidateName: NormalizeName(cols.get(row, "candidate name")),
		ContactNumber: cols.get(row, "contact number"),
		ClientName:    cols.get(row, "client name"),
		Position:      cols.get(row, "position"),
		HRName:        cols.get(row, "hr name"),
		Feedback:      cols.get(row, "feedback"),
	}

	if _, ok := refid.Parse(rec.ReferenceID); !ok {
		return rec, fmt.Errorf("malformed reference id %q", rec.ReferenceID)
	}
	for name, v := range map[string]string{
		"candidate name": rec.CandidateName,
		"client name":    rec.ClientName,
		"position":       rec.Position,
		"hr name":        rec.HRName,
	} {
		if v == "" {
			return rec, fmt.Errorf("%s is required", name)
		}
	}

	status, ok := models.ParseStatus(cols.get(row, "status"))
	if !ok {
		return rec, fmt.Errorf("unknown status %q", cols.get(row, "status"))
	}
	rec.Status = status

	shortlisted, err := models.ParseDate(cols.get(row, "shortlisted date"))
	if err != nil {
		return rec, fmt.Errorf("shortlisted date: %w", err)
	}
	if shortlisted == nil {
		return rec, errors.New("shortlisted date is required")
	}
	rec.ShortlistedDate = *shortlisted

	if rec.InterviewDate, err = models.ParseDate(cols.get(row, "interview date")); err != nil {
		return rec, fmt.Errorf("interview date: %w", err)
	}
	if rec.JoiningDate, err = models.ParseDate(cols.get(row, "joining date")); err != nil {
		return rec, fmt.Errorf("joining date: %w", err)
	}
	if rec.SRDate, err = models.ParseDate(cols.get(row, "sr date")); err != nil {
		return rec, fmt.Errorf("sr date: %w", err)
	}

	switch {
	case rec.Status == models.StatusOnboarded && rec.JoiningDate == nil:
		return rec, errors.New("onboarded rows need a joining date")
	case !rec.Status.Joined() && (rec.JoiningDate != nil || rec.SRDate != nil):
		return rec, fmt.Errorf("joining and sr dates are only valid once onboarded, status is %s", rec.Status)
	case rec.SRDate != nil && rec.JoiningDate == nil:
		return rec, errors.New("sr date without a joining date")
	}
	return rec, nil
}

// ReadClients parses a Client_Master export
func ReadClients(r io.Reader) ([]models.ClientOpening, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := indexHeaders(rows[0])
	if err := cols.require("client name", "position", "sr days"); err != nil {
		return nil, err
	}

	var openings []models.ClientOpening
	var errs []error
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		o := models.ClientOpening{
			ClientName:    cols.get(row, "client name"),
			Position:      cols.get(row, "position"),
			Address:       cols.get(row, "address"),
			MapLink:       cols.get(row, "map link"),
			ContactPerson: cols.get(row, "contact person"),
		}
		if o.ClientName == "" || o.Position == "" {
			errs = append(errs, &RowError{Line: i + 2, Err: errors.New("client name and position are required")})
			continue
		}
		days, err := strconv.Atoi(cols.get(row, "sr days"))
		if err != nil || days < 0 {
			errs = append(errs, &RowError{Line: i + 2, Err: fmt.Errorf("invalid sr days %q", cols.get(row, "sr days"))})
			continue
		}
		o.SRDays = days
		openings = append(openings, o)
	}
	return openings, errors.Join(errs...)
}

// WriteCandidates writes records in the ATS_Data layout
func WriteCandidates(w io.Writer, records []models.CandidateRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CandidateHeaders); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
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
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteClients writes openings in the Client_Master layout
func WriteClients(w io.Writer, openings []models.ClientOpening) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ClientHeaders); err != nil {
		return err
	}
	for _, o := range openings {
		row := []string{o.ClientName, o.Position, strconv.Itoa(o.SRDays), o.Address, o.MapLink, o.ContactPerson}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
