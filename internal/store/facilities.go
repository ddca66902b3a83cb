package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateFacility adds a new facility.
func (s *Store) CreateFacility(ctx context.Context, f Facility) (*Facility, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Status == "" {
		f.Status = FacilityActive
	}
	f.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO facilities (id, name, location, capacity_tons, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.Location, f.CapacityTons, f.Status, f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting facility: %w", err)
	}
	return &f, nil
}

// GetFacility retrieves a facility by its ID.
func (s *Store) GetFacility(ctx context.Context, id string) (*Facility, error) {
	var f Facility
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, location, capacity_tons, status, created_at
		 FROM facilities WHERE id = ?`, id,
	).Scan(&f.ID, &f.Name, &f.Location, &f.CapacityTons, &f.Status, &f.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("facility %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting facility: %w", err)
	}
	return &f, nil
}

// FacilityFilter narrows ListFacilities results.
type FacilityFilter struct {
	Status string
	Limit  int
}

// ListFacilities returns facilities matching the filter.
func (s *Store) ListFacilities(ctx context.Context, filter FacilityFilter) ([]Facility, error) {
	query := `SELECT id, name, location, capacity_tons, status, created_at FROM facilities WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing facilities: %w", err)
	}
	defer rows.Close()

	var facilities []Facility
	for rows.Next() {
		var f Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.CapacityTons, &f.Status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

// UpdateFacility replaces the mutable fields of a facility.
func (s *Store) UpdateFacility(ctx context.Context, f Facility) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE facilities SET name = ?, location = ?, capacity_tons = ?, status = ? WHERE id = ?`,
		f.Name, f.Location, f.CapacityTons, f.Status, f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating facility: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("facility %s: %w", f.ID, ErrNotFound)
	}
	return nil
}

// DeleteFacility removes a facility.
func (s *Store) DeleteFacility(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting facility: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("facility %s: %w", id, ErrNotFound)
	}
	return nil
}
