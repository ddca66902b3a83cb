package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateInspection records a new facility inspection.
func (s *Store) CreateInspection(ctx context.Context, in Inspection) (*Inspection, error) {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Status == "" {
		in.Status = InspectionPending
	}
	if in.InspectedAt.IsZero() {
		in.InspectedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inspections (id, facility_id, inspector, status, notes, inspected_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.FacilityID, in.Inspector, in.Status, in.Notes, in.InspectedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting inspection: %w", err)
	}
	return &in, nil
}

// GetInspection retrieves an inspection by its ID.
func (s *Store) GetInspection(ctx context.Context, id string) (*Inspection, error) {
	var in Inspection
	err := s.db.QueryRowContext(ctx,
		`SELECT id, facility_id, inspector, status, notes, inspected_at
		 FROM inspections WHERE id = ?`, id,
	).Scan(&in.ID, &in.FacilityID, &in.Inspector, &in.Status, &in.Notes, &in.InspectedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting inspection: %w", err)
	}
	return &in, nil
}

// InspectionFilter narrows ListInspections results.
type InspectionFilter struct {
	FacilityID string
	Status     string
	Limit      int
}

// ListInspections returns inspections matching the filter, newest first.
func (s *Store) ListInspections(ctx context.Context, filter InspectionFilter) ([]Inspection, error) {
	query := `SELECT id, facility_id, inspector, status, notes, inspected_at FROM inspections WHERE 1=1`
	args := []interface{}{}

	if filter.FacilityID != "" {
		query += " AND facility_id = ?"
		args = append(args, filter.FacilityID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY inspected_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	defer rows.Close()

	var inspections []Inspection
	for rows.Next() {
		var in Inspection
		if err := rows.Scan(&in.ID, &in.FacilityID, &in.Inspector, &in.Status, &in.Notes, &in.InspectedAt); err != nil {
			return nil, fmt.Errorf("scanning inspection: %w", err)
		}
		inspections = append(inspections, in)
	}
	return inspections, rows.Err()
}

// ListInspectionsByFacility returns all inspections for one facility.
func (s *Store) ListInspectionsByFacility(ctx context.Context, facilityID string) ([]Inspection, error) {
	return s.ListInspections(ctx, InspectionFilter{FacilityID: facilityID})
}

// UpdateInspection replaces the mutable fields of an inspection.
func (s *Store) UpdateInspection(ctx context.Context, in Inspection) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE inspections SET inspector = ?, status = ?, notes = ? WHERE id = ?`,
		in.Inspector, in.Status, in.Notes, in.ID,
	)
	if err != nil {
		return fmt.Errorf("updating inspection: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("inspection %s: %w", in.ID, ErrNotFound)
	}
	return nil
}

// DeleteInspection removes an inspection.
func (s *Store) DeleteInspection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM inspections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inspection: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}
	return nil
}
