package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecotrace/wastewatch/internal/db"
	"github.com/ecotrace/wastewatch/internal/store"
)

const fixtureJSON = `{
  "facilities": [
    {"id": "fac-1", "name": "North Plant", "location": "Rotterdam"}
  ],
  "waste_types": [
    {"name": "industrial solvents", "category": "chemical", "hazardous": true}
  ],
  "shipments": [
    {"id": "shp-1", "facility_id": "fac-1", "source": "Acme Disposal", "weight_kg": 850}
  ],
  "inspections": [
    {"facility_id": "fac-1", "inspector": "J. Okafor", "status": "accepted"}
  ],
  "contaminants": [
    {"facility_id": "fac-1", "shipment_id": "shp-1", "substance": "mercury", "explosive_level": "high"}
  ]
}`

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return store.New(database)
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()
	// Fixture files are discovered recursively.
	writeFixture(t, filepath.Join(dir, "demo"), "waste.json", fixtureJSON)

	summary, err := New(st, nil).LoadDir(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if summary.Files != 1 {
		t.Errorf("files = %d, want 1", summary.Files)
	}
	if summary.Total() != 5 {
		t.Errorf("total records = %d, want 5", summary.Total())
	}

	facility, err := st.GetFacility(context.Background(), "fac-1")
	if err != nil {
		t.Fatalf("seeded facility missing: %v", err)
	}
	if facility.Status != store.FacilityActive {
		t.Errorf("status = %q, want default %q applied during load", facility.Status, store.FacilityActive)
	}

	contaminants, err := st.ListContaminantsByShipment(context.Background(), "shp-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(contaminants) != 1 || contaminants[0].Substance != "mercury" {
		t.Errorf("contaminants = %+v, want the seeded mercury record", contaminants)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	st := newTestStore(t)
	if _, err := New(st, nil).LoadDir(context.Background(), t.TempDir(), ""); err == nil {
		t.Error("expected error for a directory without fixture files")
	}
}

func TestLoadFileBadJSON(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()
	writeFixture(t, dir, "broken.json", "{not json")

	var summary Summary
	if err := New(st, nil).LoadFile(context.Background(), filepath.Join(dir, "broken.json"), &summary); err == nil {
		t.Error("expected parse error")
	}
	if summary.Files != 0 {
		t.Errorf("files = %d, a failed file must not be counted", summary.Files)
	}
}

func TestLoadFileDuplicateID(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()
	writeFixture(t, dir, "waste.json", fixtureJSON)
	path := filepath.Join(dir, "waste.json")

	var summary Summary
	if err := New(st, nil).LoadFile(context.Background(), path, &summary); err != nil {
		t.Fatalf("first load: %v", err)
	}
	// Loading the same fixture twice collides on the explicit ids.
	if err := New(st, nil).LoadFile(context.Background(), path, &summary); err == nil {
		t.Error("expected primary key conflict on second load")
	}
}
