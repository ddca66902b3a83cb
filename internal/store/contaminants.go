package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateContaminant records a detected contaminant.
func (s *Store) CreateContaminant(ctx context.Context, c Contaminant) (*Contaminant, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ExplosiveLevel == "" {
		c.ExplosiveLevel = LevelLow
	}
	if c.DetectedAt.IsZero() {
		c.DetectedAt = time.Now().UTC()
	}

	shipmentID := sql.NullString{String: c.ShipmentID, Valid: c.ShipmentID != ""}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contaminants (id, facility_id, shipment_id, substance, explosive_level, detected_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.FacilityID, shipmentID, c.Substance, c.ExplosiveLevel, c.DetectedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting contaminant: %w", err)
	}
	return &c, nil
}

// GetContaminant retrieves a contaminant by its ID.
func (s *Store) GetContaminant(ctx context.Context, id string) (*Contaminant, error) {
	var c Contaminant
	var shipmentID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, facility_id, shipment_id, substance, explosive_level, detected_at
		 FROM contaminants WHERE id = ?`, id,
	).Scan(&c.ID, &c.FacilityID, &shipmentID, &c.Substance, &c.ExplosiveLevel, &c.DetectedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contaminant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting contaminant: %w", err)
	}
	c.ShipmentID = shipmentID.String
	return &c, nil
}

// ContaminantFilter narrows ListContaminants results.
type ContaminantFilter struct {
	FacilityID     string
	ShipmentID     string
	ExplosiveLevel string
	DetectedAfter  time.Time
	Limit          int
}

// ListContaminants returns contaminants matching the filter, newest first.
func (s *Store) ListContaminants(ctx context.Context, filter ContaminantFilter) ([]Contaminant, error) {
	query := `SELECT id, facility_id, shipment_id, substance, explosive_level, detected_at FROM contaminants WHERE 1=1`
	args := []interface{}{}

	if filter.FacilityID != "" {
		query += " AND facility_id = ?"
		args = append(args, filter.FacilityID)
	}
	if filter.ShipmentID != "" {
		query += " AND shipment_id = ?"
		args = append(args, filter.ShipmentID)
	}
	if filter.ExplosiveLevel != "" {
		query += " AND explosive_level = ?"
		args = append(args, filter.ExplosiveLevel)
	}
	if !filter.DetectedAfter.IsZero() {
		query += " AND detected_at >= ?"
		args = append(args, filter.DetectedAfter)
	}
	query += " ORDER BY detected_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contaminants: %w", err)
	}
	defer rows.Close()

	var contaminants []Contaminant
	for rows.Next() {
		var c Contaminant
		var shipmentID sql.NullString
		if err := rows.Scan(&c.ID, &c.FacilityID, &shipmentID, &c.Substance, &c.ExplosiveLevel, &c.DetectedAt); err != nil {
			return nil, fmt.Errorf("scanning contaminant: %w", err)
		}
		c.ShipmentID = shipmentID.String
		contaminants = append(contaminants, c)
	}
	return contaminants, rows.Err()
}

// ListContaminantsByFacility returns all contaminants detected at one facility.
func (s *Store) ListContaminantsByFacility(ctx context.Context, facilityID string) ([]Contaminant, error) {
	return s.ListContaminants(ctx, ContaminantFilter{FacilityID: facilityID})
}

// ListContaminantsByShipment returns contaminants tied to one shipment.
func (s *Store) ListContaminantsByShipment(ctx context.Context, shipmentID string) ([]Contaminant, error) {
	return s.ListContaminants(ctx, ContaminantFilter{ShipmentID: shipmentID})
}

// UpdateContaminant replaces the mutable fields of a contaminant.
func (s *Store) UpdateContaminant(ctx context.Context, c Contaminant) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE contaminants SET substance = ?, explosive_level = ? WHERE id = ?`,
		c.Substance, c.ExplosiveLevel, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contaminant: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("contaminant %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

// DeleteContaminant removes a contaminant record.
func (s *Store) DeleteContaminant(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contaminants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contaminant: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("contaminant %s: %w", id, ErrNotFound)
	}
	return nil
}
