package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/khrees2412/takecare-ats/internal/refid"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

// dates are stored as ISO text so they sort and compare in SQL
const isoDate = "2006-01-02"

const candidateColumns = `reference_id, shortlisted_date, candidate_name, contact_number, client_name,
	position, interview_date, status, hr_name, joining_date, sr_date, feedback`

type scanner interface {
	Scan(dest ...any) error
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(isoDate), Valid: true}
}

func parseNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(isoDate, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanCandidate(row scanner) (*models.CandidateRecord, error) {
	rec := &models.CandidateRecord{}
	var shortlisted string
	var interview, joining, sr sql.NullString
	var status string

	err := row.Scan(&rec.ReferenceID, &shortlisted, &rec.CandidateName, &rec.ContactNumber,
		&rec.ClientName, &rec.Position, &interview, &status, &rec.HRName, &joining, &sr, &rec.Feedback)
	if err != nil {
		return nil, err
	}

	rec.Status = models.Status(status)
	if rec.ShortlistedDate, err = time.Parse(isoDate, shortlisted); err != nil {
		return nil, fmt.Errorf("candidate %s: shortlisted_date: %w", rec.ReferenceID, err)
	}
	if rec.InterviewDate, err = parseNullDate(interview); err != nil {
		return nil, fmt.Errorf("candidate %s: interview_date: %w", rec.ReferenceID, err)
	}
	if rec.JoiningDate, err = parseNullDate(joining); err != nil {
		return nil, fmt.Errorf("candidate %s: joining_date: %w", rec.ReferenceID, err)
	}
	if rec.SRDate, err = parseNullDate(sr); err != nil {
		return nil, fmt.Errorf("candidate %s: sr_date: %w", rec.ReferenceID, err)
	}
	return rec, nil
}

// ListReferenceIDs returns every stored reference ID, including malformed
// legacy values
func (s *Store) ListReferenceIDs(ctx context.Context) ([]string, error) {
	return listReferenceIDs(ctx, s.db)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listReferenceIDs(ctx context.Context, q querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT reference_id FROM candidates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateCandidate allocates the next reference ID and inserts rec under it
// in a single transaction. rec.ReferenceID is set on success.
func (s *Store) CreateCandidate(ctx context.Context, rec *models.CandidateRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ids, err := listReferenceIDs(ctx, tx)
	if err != nil {
		return fmt.Errorf("list reference ids: %w", err)
	}
	id := refid.Next(ids)

	if err := insertCandidate(ctx, tx, id, rec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	rec.ReferenceID = id
	return nil
}

// InsertCandidate stores rec under its existing reference ID
func (s *Store) InsertCandidate(ctx context.Context, rec *models.CandidateRecord) error {
	return insertCandidate(ctx, s.db, rec.ReferenceID, rec)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCandidate(ctx context.Context, ex execer, id string, rec *models.CandidateRecord) error {
	query := `INSERT INTO candidates (` + candidateColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := ex.ExecContext(ctx, query, id, rec.ShortlistedDate.Format(isoDate), rec.CandidateName,
		rec.ContactNumber, rec.ClientName, rec.Position, nullDate(rec.InterviewDate), string(rec.Status),
		rec.HRName, nullDate(rec.JoiningDate), nullDate(rec.SRDate), rec.Feedback)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("candidate %s: %w", id, ErrDuplicate)
		}
		return fmt.Errorf("insert candidate %s: %w", id, err)
	}
	return nil
}

// GetCandidate loads one record by reference ID
func (s *Store) GetCandidate(ctx context.Context, referenceID string) (*models.CandidateRecord, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE reference_id=?`
	rec, err := scanCandidate(s.db.QueryRowContext(ctx, query, referenceID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", referenceID, ErrNotFound)
	}
	return rec, err
}

// UpdateCandidate writes the lifecycle-mutable fields of rec. Creation-time
// fields are never rewritten.
func (s *Store) UpdateCandidate(ctx context.Context, rec *models.CandidateRecord) error {
	query := `UPDATE candidates SET status=?, interview_date=?, joining_date=?, sr_date=?, feedback=?
			  WHERE reference_id=?`
	result, err := s.db.ExecContext(ctx, query, string(rec.Status), nullDate(rec.InterviewDate),
		nullDate(rec.JoiningDate), nullDate(rec.SRDate), rec.Feedback, rec.ReferenceID)
	if err != nil {
		return fmt.Errorf("update candidate %s: %w", rec.ReferenceID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("candidate %s: %w", rec.ReferenceID, ErrNotFound)
	}
	return nil
}

// ListCandidates returns every stored record ordered by the numeric part of
// its reference ID, so E100000 follows E99999
func (s *Store) ListCandidates(ctx context.Context) ([]models.CandidateRecord, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates
			  ORDER BY CAST(substr(reference_id, 2) AS INTEGER), reference_id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.CandidateRecord{}
	for rows.Next() {
		rec, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
