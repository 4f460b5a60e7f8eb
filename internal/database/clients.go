package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khrees2412/takecare-ats/internal/lifecycle"
	"github.com/khrees2412/takecare-ats/pkg/models"
)

// UpsertClientOpening inserts or replaces the row for the opening's client
// and position
func (s *Store) UpsertClientOpening(ctx context.Context, o *models.ClientOpening) error {
	query := `INSERT INTO client_openings (client_name, position, sr_days, address, map_link, contact_person)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(client_name, position) DO UPDATE SET
			  sr_days=excluded.sr_days, address=excluded.address,
			  map_link=excluded.map_link, contact_person=excluded.contact_person`
	_, err := s.db.ExecContext(ctx, query, o.ClientName, o.Position, o.SRDays, o.Address, o.MapLink, o.ContactPerson)
	if err != nil {
		return fmt.Errorf("upsert client opening %s / %s: %w", o.ClientName, o.Position, err)
	}
	return nil
}

// GetClientOpening looks up an opening; names match case-insensitively
func (s *Store) GetClientOpening(ctx context.Context, clientName, position string) (*models.ClientOpening, error) {
	query := `SELECT client_name, position, sr_days, address, map_link, contact_person
			  FROM client_openings WHERE client_name=? AND position=?`
	o := &models.ClientOpening{}
	err := s.db.QueryRowContext(ctx, query, clientName, position).Scan(&o.ClientName, &o.Position,
		&o.SRDays, &o.Address, &o.MapLink, &o.ContactPerson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client opening %s / %s: %w", clientName, position, ErrNotFound)
	}
	return o, err
}

// ListClientOpenings returns the whole client master
func (s *Store) ListClientOpenings(ctx context.Context) ([]models.ClientOpening, error) {
	query := `SELECT client_name, position, sr_days, address, map_link, contact_person
			  FROM client_openings ORDER BY client_name, position`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	openings := []models.ClientOpening{}
	for rows.Next() {
		var o models.ClientOpening
		if err := rows.Scan(&o.ClientName, &o.Position, &o.SRDays, &o.Address, &o.MapLink, &o.ContactPerson); err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}
	return openings, rows.Err()
}

// SRDays implements lifecycle.SRLookup against the client master
func (s *Store) SRDays(ctx context.Context, clientName, position string) (int, error) {
	o, err := s.GetClientOpening(ctx, clientName, position)
	if errors.Is(err, ErrNotFound) {
		return 0, lifecycle.ErrLookupNotFound
	}
	if err != nil {
		return 0, err
	}
	return o.SRDays, nil
}
