package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecotrace/wastewatch/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(database)
}

func TestFacilityRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateFacility(ctx, Facility{Name: "North Plant", Location: "Rotterdam", CapacityTons: 1200})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must assign an id")
	}
	if created.Status != FacilityActive {
		t.Errorf("status = %q, want default %q", created.Status, FacilityActive)
	}
	if created.CreatedAt.IsZero() {
		t.Error("create must stamp created_at")
	}

	got, err := s.GetFacility(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "North Plant" || got.Location != "Rotterdam" || got.CapacityTons != 1200 {
		t.Errorf("got %+v, want the created facility back", got)
	}

	got.Status = FacilityClosed
	if err := s.UpdateFacility(ctx, *got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = s.GetFacility(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Status != FacilityClosed {
		t.Errorf("status = %q, want %q", got.Status, FacilityClosed)
	}

	if err := s.DeleteFacility(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetFacility(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestFacilityNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetFacility(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get = %v, want ErrNotFound", err)
	}
	if err := s.UpdateFacility(ctx, Facility{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update = %v, want ErrNotFound", err)
	}
	if err := s.DeleteFacility(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete = %v, want ErrNotFound", err)
	}
}

func TestListFacilitiesFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, f := range []Facility{
		{Name: "North Plant"},
		{Name: "South Plant", Status: FacilitySuspended},
		{Name: "East Plant"},
	} {
		if _, err := s.CreateFacility(ctx, f); err != nil {
			t.Fatal(err)
		}
	}

	active, err := s.ListFacilities(ctx, FacilityFilter{Status: FacilityActive})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("listed %d active facilities, want 2", len(active))
	}

	limited, err := s.ListFacilities(ctx, FacilityFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("listed %d facilities with limit 1, want 1", len(limited))
	}
}

func TestInspectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	facility, err := s.CreateFacility(ctx, Facility{Name: "North Plant"})
	if err != nil {
		t.Fatal(err)
	}

	when := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	created, err := s.CreateInspection(ctx, Inspection{
		FacilityID:  facility.ID,
		Inspector:   "J. Okafor",
		Status:      InspectionRejected,
		Notes:       "mislabelled drums",
		InspectedAt: when,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetInspection(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.InspectedAt.Equal(when) {
		t.Errorf("inspectedAt = %v, want %v", got.InspectedAt, when)
	}
	if got.Accepted() {
		t.Error("rejected inspection must not report accepted")
	}

	pending, err := s.CreateInspection(ctx, Inspection{FacilityID: facility.ID})
	if err != nil {
		t.Fatal(err)
	}
	if pending.Status != InspectionPending {
		t.Errorf("status = %q, want default %q", pending.Status, InspectionPending)
	}

	byFacility, err := s.ListInspectionsByFacility(ctx, facility.ID)
	if err != nil {
		t.Fatalf("list by facility: %v", err)
	}
	if len(byFacility) != 2 {
		t.Errorf("listed %d inspections, want 2", len(byFacility))
	}

	rejected, err := s.ListInspections(ctx, InspectionFilter{FacilityID: facility.ID, Status: InspectionRejected})
	if err != nil {
		t.Fatalf("list rejected: %v", err)
	}
	if len(rejected) != 1 {
		t.Errorf("listed %d rejected inspections, want 1", len(rejected))
	}
}

func TestContaminantFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	facility, err := s.CreateFacility(ctx, Facility{Name: "North Plant"})
	if err != nil {
		t.Fatal(err)
	}
	shipment, err := s.CreateShipment(ctx, Shipment{FacilityID: facility.ID, Source: "Acme Disposal"})
	if err != nil {
		t.Fatal(err)
	}

	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	for _, c := range []Contaminant{
		{FacilityID: facility.ID, ShipmentID: shipment.ID, Substance: "mercury", ExplosiveLevel: LevelHigh},
		{FacilityID: facility.ID, Substance: "solvent", DetectedAt: old},
		{FacilityID: facility.ID, Substance: "asbestos", ExplosiveLevel: LevelMedium},
	} {
		if _, err := s.CreateContaminant(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("by shipment", func(t *testing.T) {
		got, err := s.ListContaminantsByShipment(ctx, shipment.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Substance != "mercury" {
			t.Errorf("got %+v, want only the mercury record", got)
		}
		if !got[0].HighRisk() {
			t.Error("high explosive level must report high risk")
		}
	})

	t.Run("by level", func(t *testing.T) {
		got, err := s.ListContaminants(ctx, ContaminantFilter{FacilityID: facility.ID, ExplosiveLevel: LevelLow})
		if err != nil {
			t.Fatal(err)
		}
		// Level defaults to low when unset.
		if len(got) != 1 || got[0].Substance != "solvent" {
			t.Errorf("got %+v, want only the solvent record", got)
		}
	})

	t.Run("detected after", func(t *testing.T) {
		cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)
		got, err := s.ListContaminants(ctx, ContaminantFilter{FacilityID: facility.ID, DetectedAfter: cutoff})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("listed %d recent contaminants, want 2", len(got))
		}
	})

	t.Run("shipment id survives round trip", func(t *testing.T) {
		all, err := s.ListContaminantsByFacility(ctx, facility.ID)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range all {
			got, err := s.GetContaminant(ctx, c.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.ShipmentID != c.ShipmentID {
				t.Errorf("shipmentId = %q, want %q", got.ShipmentID, c.ShipmentID)
			}
		}
	})
}

func TestShipmentSourceHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	facility, err := s.CreateFacility(ctx, Facility{Name: "North Plant"})
	if err != nil {
		t.Fatal(err)
	}

	current, err := s.CreateShipment(ctx, Shipment{FacilityID: facility.ID, Source: "Acme Disposal"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.CreateShipment(ctx, Shipment{FacilityID: facility.ID, Source: "Acme Disposal"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CreateShipment(ctx, Shipment{FacilityID: facility.ID, Source: "Other Hauler"}); err != nil {
		t.Fatal(err)
	}

	history, err := s.ListShipmentsBySource(ctx, "Acme Disposal", current.ID)
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("listed %d historical shipments, want 3 (excluding the current one)", len(history))
	}
	for _, sh := range history {
		if sh.ID == current.ID {
			t.Error("source history must exclude the shipment under analysis")
		}
	}
}

func TestShipmentUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	facility, err := s.CreateFacility(ctx, Facility{Name: "North Plant"})
	if err != nil {
		t.Fatal(err)
	}

	sh, err := s.CreateShipment(ctx, Shipment{FacilityID: facility.ID, Source: "Acme Disposal", WeightKG: 850})
	if err != nil {
		t.Fatal(err)
	}
	if sh.Status != ShipmentReceived {
		t.Errorf("status = %q, want default %q", sh.Status, ShipmentReceived)
	}

	sh.Status = ShipmentProcessing
	if err := s.UpdateShipment(ctx, *sh); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetShipment(ctx, sh.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != ShipmentProcessing || got.WeightKG != 850 {
		t.Errorf("got %+v after update", got)
	}

	if err := s.DeleteShipment(ctx, sh.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetShipment(ctx, sh.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestWasteTypeHazardFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateWasteType(ctx, WasteType{Name: "industrial solvents", Hazardous: true, Category: "chemical"})
	if err != nil {
		t.Fatal(err)
	}
	plain, err := s.CreateWasteType(ctx, WasteType{Name: "mixed paper"})
	if err != nil {
		t.Fatal(err)
	}
	if plain.Category != "general" {
		t.Errorf("category = %q, want default %q", plain.Category, "general")
	}

	hazardous := true
	got, err := s.ListWasteTypes(ctx, WasteTypeFilter{Hazardous: &hazardous})
	if err != nil {
		t.Fatalf("list hazardous: %v", err)
	}
	if len(got) != 1 || got[0].ID != created.ID {
		t.Errorf("got %+v, want only the hazardous type", got)
	}

	hazardous = false
	got, err = s.ListWasteTypes(ctx, WasteTypeFilter{Hazardous: &hazardous})
	if err != nil {
		t.Fatalf("list non-hazardous: %v", err)
	}
	if len(got) != 1 || got[0].ID != plain.ID {
		t.Errorf("got %+v, want only the non-hazardous type", got)
	}

	all, err := s.ListWasteTypes(ctx, WasteTypeFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("listed %d waste types, want 2", len(all))
	}
}
