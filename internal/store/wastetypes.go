package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateWasteType adds a waste-type category.
func (s *Store) CreateWasteType(ctx context.Context, wt WasteType) (*WasteType, error) {
	if wt.ID == "" {
		wt.ID = uuid.New().String()
	}
	if wt.Category == "" {
		wt.Category = "general"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO waste_types (id, name, category, hazardous, handling_notes)
		 VALUES (?, ?, ?, ?, ?)`,
		wt.ID, wt.Name, wt.Category, wt.Hazardous, wt.HandlingNotes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting waste type: %w", err)
	}
	return &wt, nil
}

// GetWasteType retrieves a waste type by its ID.
func (s *Store) GetWasteType(ctx context.Context, id string) (*WasteType, error) {
	var wt WasteType
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, hazardous, handling_notes FROM waste_types WHERE id = ?`, id,
	).Scan(&wt.ID, &wt.Name, &wt.Category, &wt.Hazardous, &wt.HandlingNotes)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("waste type %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting waste type: %w", err)
	}
	return &wt, nil
}

// WasteTypeFilter narrows ListWasteTypes results.
type WasteTypeFilter struct {
	Category  string
	Hazardous *bool
	Limit     int
}

// ListWasteTypes returns waste types matching the filter.
func (s *Store) ListWasteTypes(ctx context.Context, filter WasteTypeFilter) ([]WasteType, error) {
	query := `SELECT id, name, category, hazardous, handling_notes FROM waste_types WHERE 1=1`
	args := []interface{}{}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Hazardous != nil {
		query += " AND hazardous = ?"
		args = append(args, *filter.Hazardous)
	}
	query += " ORDER BY name ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing waste types: %w", err)
	}
	defer rows.Close()

	var types []WasteType
	for rows.Next() {
		var wt WasteType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Category, &wt.Hazardous, &wt.HandlingNotes); err != nil {
			return nil, fmt.Errorf("scanning waste type: %w", err)
		}
		types = append(types, wt)
	}
	return types, rows.Err()
}

// UpdateWasteType replaces the mutable fields of a waste type.
func (s *Store) UpdateWasteType(ctx context.Context, wt WasteType) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE waste_types SET name = ?, category = ?, hazardous = ?, handling_notes = ? WHERE id = ?`,
		wt.Name, wt.Category, wt.Hazardous, wt.HandlingNotes, wt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating waste type: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("waste type %s: %w", wt.ID, ErrNotFound)
	}
	return nil
}

// DeleteWasteType removes a waste type.
func (s *Store) DeleteWasteType(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM waste_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting waste type: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("waste type %s: %w", id, ErrNotFound)
	}
	return nil
}
