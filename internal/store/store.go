// Package store provides data access for waste-management entities
// backed by SQLite.
package store

import (
	"errors"
	"time"

	"github.com/ecotrace/wastewatch/internal/db"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Store manages persistence of waste-management entities.
type Store struct {
	db *db.DB
}

// New creates a new store over the given database.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

// FacilityStatus values accepted by the facilities table.
const (
	FacilityActive    = "active"
	FacilitySuspended = "suspended"
	FacilityClosed    = "closed"
)

// Inspection status values.
const (
	InspectionAccepted = "accepted"
	InspectionRejected = "rejected"
	InspectionPending  = "pending"
)

// Shipment status values.
const (
	ShipmentReceived   = "received"
	ShipmentProcessing = "processing"
	ShipmentProcessed  = "processed"
	ShipmentRejected   = "rejected"
)

// Explosive level values for contaminants. High marks a contaminant as
// high risk for metric purposes.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Facility is a waste-processing site.
type Facility struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	CapacityTons float64   `json:"capacity_tons"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Inspection is a recorded facility inspection.
type Inspection struct {
	ID          string    `json:"id"`
	FacilityID  string    `json:"facility_id"`
	Inspector   string    `json:"inspector"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	InspectedAt time.Time `json:"inspected_at"`
}

// Accepted reports whether the inspection passed.
func (i Inspection) Accepted() bool { return i.Status == InspectionAccepted }

// Contaminant is a substance detected at a facility, optionally tied to
// the shipment it arrived on.
type Contaminant struct {
	ID             string    `json:"id"`
	FacilityID     string    `json:"facility_id"`
	ShipmentID     string    `json:"shipment_id,omitempty"`
	Substance      string    `json:"substance"`
	ExplosiveLevel string    `json:"explosive_level"`
	DetectedAt     time.Time `json:"detected_at"`
}

// HighRisk reports whether the contaminant is classified high risk.
func (c Contaminant) HighRisk() bool { return c.ExplosiveLevel == LevelHigh }

// Shipment is an inbound waste delivery.
type Shipment struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Source     string    `json:"source"`
	WasteType  string    `json:"waste_type"`
	WeightKG   float64   `json:"weight_kg"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"received_at"`
}

// WasteType is a category of waste accepted by facilities.
type WasteType struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Hazardous     bool   `json:"hazardous"`
	HandlingNotes string `json:"handling_notes"`
}
