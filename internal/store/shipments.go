package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateShipment records an inbound shipment.
func (s *Store) CreateShipment(ctx context.Context, sh Shipment) (*Shipment, error) {
	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}
	if sh.Status == "" {
		sh.Status = ShipmentReceived
	}
	if sh.ReceivedAt.IsZero() {
		sh.ReceivedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shipments (id, facility_id, source, waste_type, weight_kg, status, received_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.FacilityID, sh.Source, sh.WasteType, sh.WeightKG, sh.Status, sh.ReceivedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting shipment: %w", err)
	}
	return &sh, nil
}

// GetShipment retrieves a shipment by its ID.
func (s *Store) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	var sh Shipment
	err := s.db.QueryRowContext(ctx,
		`SELECT id, facility_id, source, waste_type, weight_kg, status, received_at
		 FROM shipments WHERE id = ?`, id,
	).Scan(&sh.ID, &sh.FacilityID, &sh.Source, &sh.WasteType, &sh.WeightKG, &sh.Status, &sh.ReceivedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("shipment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting shipment: %w", err)
	}
	return &sh, nil
}

// ShipmentFilter narrows ListShipments results.
type ShipmentFilter struct {
	FacilityID string
	Source     string
	Status     string
	ExcludeID  string
	Limit      int
}

// ListShipments returns shipments matching the filter, newest first.
func (s *Store) ListShipments(ctx context.Context, filter ShipmentFilter) ([]Shipment, error) {
	query := `SELECT id, facility_id, source, waste_type, weight_kg, status, received_at FROM shipments WHERE 1=1`
	args := []interface{}{}

	if filter.FacilityID != "" {
		query += " AND facility_id = ?"
		args = append(args, filter.FacilityID)
	}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.ExcludeID != "" {
		query += " AND id != ?"
		args = append(args, filter.ExcludeID)
	}
	query += " ORDER BY received_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shipments: %w", err)
	}
	defer rows.Close()

	var shipments []Shipment
	for rows.Next() {
		var sh Shipment
		if err := rows.Scan(&sh.ID, &sh.FacilityID, &sh.Source, &sh.WasteType, &sh.WeightKG, &sh.Status, &sh.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}
		shipments = append(shipments, sh)
	}
	return shipments, rows.Err()
}

// ListShipmentsByFacility returns all shipments received at one facility.
func (s *Store) ListShipmentsByFacility(ctx context.Context, facilityID string) ([]Shipment, error) {
	return s.ListShipments(ctx, ShipmentFilter{FacilityID: facilityID})
}

// ListShipmentsBySource returns prior shipments declared from the same
// source, excluding the shipment under analysis.
func (s *Store) ListShipmentsBySource(ctx context.Context, source, excludeID string) ([]Shipment, error) {
	return s.ListShipments(ctx, ShipmentFilter{Source: source, ExcludeID: excludeID})
}

// UpdateShipment replaces the mutable fields of a shipment.
func (s *Store) UpdateShipment(ctx context.Context, sh Shipment) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE shipments SET source = ?, waste_type = ?, weight_kg = ?, status = ? WHERE id = ?`,
		sh.Source, sh.WasteType, sh.WeightKG, sh.Status, sh.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shipment: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("shipment %s: %w", sh.ID, ErrNotFound)
	}
	return nil
}

// DeleteShipment removes a shipment record.
func (s *Store) DeleteShipment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shipment: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("shipment %s: %w", id, ErrNotFound)
	}
	return nil
}
