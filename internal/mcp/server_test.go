package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and that every tool carries a description.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"create_facility", createFacilityTool, "create_facility"},
		{"get_facility", getFacilityTool, "get_facility"},
		{"list_facilities", listFacilitiesTool, "list_facilities"},
		{"update_facility", updateFacilityTool, "update_facility"},
		{"delete_facility", deleteFacilityTool, "delete_facility"},
		{"create_inspection", createInspectionTool, "create_inspection"},
		{"get_inspection", getInspectionTool, "get_inspection"},
		{"list_inspections", listInspectionsTool, "list_inspections"},
		{"update_inspection", updateInspectionTool, "update_inspection"},
		{"delete_inspection", deleteInspectionTool, "delete_inspection"},
		{"create_contaminant", createContaminantTool, "create_contaminant"},
		{"get_contaminant", getContaminantTool, "get_contaminant"},
		{"list_contaminants", listContaminantsTool, "list_contaminants"},
		{"update_contaminant", updateContaminantTool, "update_contaminant"},
		{"delete_contaminant", deleteContaminantTool, "delete_contaminant"},
		{"create_shipment", createShipmentTool, "create_shipment"},
		{"get_shipment", getShipmentTool, "get_shipment"},
		{"list_shipments", listShipmentsTool, "list_shipments"},
		{"update_shipment", updateShipmentTool, "update_shipment"},
		{"delete_shipment", deleteShipmentTool, "delete_shipment"},
		{"create_waste_type", createWasteTypeTool, "create_waste_type"},
		{"get_waste_type", getWasteTypeTool, "get_waste_type"},
		{"list_waste_types", listWasteTypesTool, "list_waste_types"},
		{"update_waste_type", updateWasteTypeTool, "update_waste_type"},
		{"delete_waste_type", deleteWasteTypeTool, "delete_waste_type"},
		{"generate_intelligent_facility_report", facilityReportTool, "generate_intelligent_facility_report"},
		{"analyze_shipment_risk", shipmentRiskTool, "analyze_shipment_risk"},
		{"suggest_inspection_questions", inspectionQuestionsTool, "suggest_inspection_questions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	if s.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if s.store == nil {
		t.Error("store not set")
	}
	if s.broker == nil {
		t.Error("broker not set")
	}
	if s.broker.IsAvailable() {
		t.Error("broker must start without a responder")
	}
}

func TestFacilityCRUD(t *testing.T) {
	s := newTestServer(t)

	created := decodeResult[store.Facility](t, callTool(t, s.handleCreateFacility, map[string]any{
		"name":          "North Plant",
		"location":      "Rotterdam",
		"capacity_tons": 1200.5,
	}))
	if created.ID == "" {
		t.Fatal("created facility has no id")
	}
	if created.Status != store.FacilityActive {
		t.Errorf("status = %q, want default %q", created.Status, store.FacilityActive)
	}

	got := decodeResult[store.Facility](t, callTool(t, s.handleGetFacility, map[string]any{
		"facility_id": created.ID,
	}))
	if got.Name != "North Plant" || got.CapacityTons != 1200.5 {
		t.Errorf("got %+v, want created facility back", got)
	}

	// Partial update: only status changes, the rest is preserved.
	updated := decodeResult[store.Facility](t, callTool(t, s.handleUpdateFacility, map[string]any{
		"facility_id": created.ID,
		"status":      store.FacilitySuspended,
	}))
	if updated.Status != store.FacilitySuspended {
		t.Errorf("status = %q, want %q", updated.Status, store.FacilitySuspended)
	}
	if updated.Location != "Rotterdam" {
		t.Errorf("location = %q, update must not clear unrelated fields", updated.Location)
	}

	listed := decodeResult[[]store.Facility](t, callTool(t, s.handleListFacilities, map[string]any{
		"status": store.FacilitySuspended,
	}))
	if len(listed) != 1 {
		t.Fatalf("listed %d facilities, want 1", len(listed))
	}

	result := callTool(t, s.handleDeleteFacility, map[string]any{"facility_id": created.ID})
	if result.IsError {
		t.Fatalf("delete failed: %s", resultText(t, result))
	}
	result = callTool(t, s.handleGetFacility, map[string]any{"facility_id": created.ID})
	if !result.IsError {
		t.Error("expected error result after delete")
	}
}

func TestCreateFacilityMissingName(t *testing.T) {
	s := newTestServer(t)
	result := callTool(t, s.handleCreateFacility, map[string]any{"location": "Rotterdam"})
	if !result.IsError {
		t.Fatal("expected error result for missing name")
	}
	if text := resultText(t, result); !strings.Contains(text, "name") {
		t.Errorf("error %q should name the missing parameter", text)
	}
}

func TestInspectionCRUD(t *testing.T) {
	s := newTestServer(t)
	facilityID := seedFacility(t, s, "North Plant")

	inspectedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	created := decodeResult[store.Inspection](t, callTool(t, s.handleCreateInspection, map[string]any{
		"facility_id":  facilityID,
		"inspector":    "J. Okafor",
		"status":       store.InspectionRejected,
		"notes":        "segregation violations on line 2",
		"inspected_at": inspectedAt.Format(time.RFC3339),
	}))
	if !created.InspectedAt.Equal(inspectedAt) {
		t.Errorf("inspectedAt = %v, want %v", created.InspectedAt, inspectedAt)
	}

	updated := decodeResult[store.Inspection](t, callTool(t, s.handleUpdateInspection, map[string]any{
		"inspection_id": created.ID,
		"status":        store.InspectionAccepted,
	}))
	if updated.Status != store.InspectionAccepted {
		t.Errorf("status = %q, want %q", updated.Status, store.InspectionAccepted)
	}
	if updated.Inspector != "J. Okafor" {
		t.Errorf("inspector = %q, update must not clear unrelated fields", updated.Inspector)
	}

	listed := decodeResult[[]store.Inspection](t, callTool(t, s.handleListInspections, map[string]any{
		"facility_id": facilityID,
		"status":      store.InspectionAccepted,
	}))
	if len(listed) != 1 {
		t.Fatalf("listed %d inspections, want 1", len(listed))
	}

	result := callTool(t, s.handleDeleteInspection, map[string]any{"inspection_id": created.ID})
	if result.IsError {
		t.Fatalf("delete failed: %s", resultText(t, result))
	}
}

func TestCreateInspectionBadTimestamp(t *testing.T) {
	s := newTestServer(t)
	facilityID := seedFacility(t, s, "North Plant")

	result := callTool(t, s.handleCreateInspection, map[string]any{
		"facility_id":  facilityID,
		"inspected_at": "yesterday-ish",
	})
	if !result.IsError {
		t.Fatal("expected error result for unparseable timestamp")
	}
}

func TestContaminantCRUD(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	facilityID := seedFacility(t, s, "North Plant")
	shipment, err := s.store.CreateShipment(ctx, store.Shipment{FacilityID: facilityID, Source: "Acme Disposal"})
	if err != nil {
		t.Fatal(err)
	}

	created := decodeResult[store.Contaminant](t, callTool(t, s.handleCreateContaminant, map[string]any{
		"facility_id":     facilityID,
		"shipment_id":     shipment.ID,
		"substance":       "mercury",
		"explosive_level": store.LevelHigh,
	}))
	if created.ShipmentID != shipment.ID {
		t.Errorf("shipmentId = %q, want %q", created.ShipmentID, shipment.ID)
	}

	updated := decodeResult[store.Contaminant](t, callTool(t, s.handleUpdateContaminant, map[string]any{
		"contaminant_id":  created.ID,
		"explosive_level": store.LevelMedium,
	}))
	if updated.ExplosiveLevel != store.LevelMedium {
		t.Errorf("explosiveLevel = %q, want %q", updated.ExplosiveLevel, store.LevelMedium)
	}

	listed := decodeResult[[]store.Contaminant](t, callTool(t, s.handleListContaminants, map[string]any{
		"shipment_id": shipment.ID,
	}))
	if len(listed) != 1 || listed[0].Substance != "mercury" {
		t.Fatalf("listed = %+v, want the mercury record", listed)
	}

	result := callTool(t, s.handleDeleteContaminant, map[string]any{"contaminant_id": created.ID})
	if result.IsError {
		t.Fatalf("delete failed: %s", resultText(t, result))
	}
}

func TestShipmentCRUD(t *testing.T) {
	s := newTestServer(t)
	facilityID := seedFacility(t, s, "North Plant")

	created := decodeResult[store.Shipment](t, callTool(t, s.handleCreateShipment, map[string]any{
		"facility_id": facilityID,
		"source":      "Acme Disposal",
		"waste_type":  "industrial solvents",
		"weight_kg":   850.0,
	}))
	if created.Status != store.ShipmentReceived {
		t.Errorf("status = %q, want default %q", created.Status, store.ShipmentReceived)
	}

	updated := decodeResult[store.Shipment](t, callTool(t, s.handleUpdateShipment, map[string]any{
		"shipment_id": created.ID,
		"status":      store.ShipmentProcessed,
	}))
	if updated.Status != store.ShipmentProcessed {
		t.Errorf("status = %q, want %q", updated.Status, store.ShipmentProcessed)
	}
	if updated.WeightKG != 850.0 {
		t.Errorf("weightKg = %v, update must not clear unrelated fields", updated.WeightKG)
	}

	listed := decodeResult[[]store.Shipment](t, callTool(t, s.handleListShipments, map[string]any{
		"source": "Acme Disposal",
	}))
	if len(listed) != 1 {
		t.Fatalf("listed %d shipments, want 1", len(listed))
	}

	result := callTool(t, s.handleDeleteShipment, map[string]any{"shipment_id": created.ID})
	if result.IsError {
		t.Fatalf("delete failed: %s", resultText(t, result))
	}
}

func TestWasteTypeCRUDAndHazardFilter(t *testing.T) {
	s := newTestServer(t)

	hazardous := decodeResult[store.WasteType](t, callTool(t, s.handleCreateWasteType, map[string]any{
		"name":           "industrial solvents",
		"category":       "chemical",
		"hazardous":      true,
		"handling_notes": "store in bunded area",
	}))
	decodeResult[store.WasteType](t, callTool(t, s.handleCreateWasteType, map[string]any{
		"name":     "mixed paper",
		"category": "recyclable",
	}))

	// Absent hazardous argument means no hazard filter at all.
	all := decodeResult[[]store.WasteType](t, callTool(t, s.handleListWasteTypes, map[string]any{}))
	if len(all) != 2 {
		t.Fatalf("listed %d waste types, want 2", len(all))
	}

	// hazardous=false is a real filter, not the same as absent.
	safe := decodeResult[[]store.WasteType](t, callTool(t, s.handleListWasteTypes, map[string]any{
		"hazardous": false,
	}))
	if len(safe) != 1 || safe[0].Name != "mixed paper" {
		t.Fatalf("hazardous=false listed %+v, want only mixed paper", safe)
	}

	updated := decodeResult[store.WasteType](t, callTool(t, s.handleUpdateWasteType, map[string]any{
		"waste_type_id": hazardous.ID,
		"category":      "chemical-regulated",
	}))
	if updated.Category != "chemical-regulated" {
		t.Errorf("category = %q, want %q", updated.Category, "chemical-regulated")
	}
	if !updated.Hazardous {
		t.Error("hazard flag must survive an unrelated update")
	}

	result := callTool(t, s.handleDeleteWasteType, map[string]any{"waste_type_id": hazardous.ID})
	if result.IsError {
		t.Fatalf("delete failed: %s", resultText(t, result))
	}
}

func TestBindResponder(t *testing.T) {
	s := newTestServer(t)

	s.BindResponder(sampling.ModeNone)
	if s.broker.IsAvailable() {
		t.Error("ModeNone must leave the broker without a responder")
	}

	s.BindResponder(sampling.ModePlaceholder)
	if !s.broker.IsAvailable() {
		t.Error("ModePlaceholder must register a responder")
	}
}
