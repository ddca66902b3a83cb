package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ecotrace/wastewatch/internal/store"
)

// jsonResult marshals v into a text tool result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// parseTimestamp reads an optional RFC 3339 timestamp parameter.
func parseTimestamp(request mcp.CallToolRequest, key string) (time.Time, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %v", key, err)
	}
	return t.UTC(), nil
}

// Facility handlers.

func (s *Server) handleCreateFacility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	created, err := s.store.CreateFacility(ctx, store.Facility{
		Name:         name,
		Location:     request.GetString("location", ""),
		CapacityTons: request.GetFloat("capacity_tons", 0),
		Status:       request.GetString("status", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating facility: %v", err)), nil
	}
	return jsonResult(created), nil
}

func (s *Server) handleGetFacility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}

	f, err := s.store.GetFacility(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(f), nil
}

func (s *Server) handleListFacilities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilities, err := s.store.ListFacilities(ctx, store.FacilityFilter{
		Status: request.GetString("status", ""),
		Limit:  request.GetInt("limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing facilities: %v", err)), nil
	}
	return jsonResult(facilities), nil
}

func (s *Server) handleUpdateFacility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}

	f, err := s.store.GetFacility(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f.Name = request.GetString("name", f.Name)
	f.Location = request.GetString("location", f.Location)
	f.CapacityTons = request.GetFloat("capacity_tons", f.CapacityTons)
	f.Status = request.GetString("status", f.Status)

	if err := s.store.UpdateFacility(ctx, *f); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(f), nil
}

func (s *Server) handleDeleteFacility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}

	if err := s.store.DeleteFacility(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("facility %s deleted", id)), nil
}

// Inspection handlers.

func (s *Server) handleCreateInspection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilityID, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}
	inspectedAt, err := parseTimestamp(request, "inspected_at")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := s.store.CreateInspection(ctx, store.Inspection{
		FacilityID:  facilityID,
		Inspector:   request.GetString("inspector", ""),
		Status:      request.GetString("status", ""),
		Notes:       request.GetString("notes", ""),
		InspectedAt: inspectedAt,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating inspection: %v", err)), nil
	}
	return jsonResult(created), nil
}

func (s *Server) handleGetInspection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("inspection_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: inspection_id"), nil
	}

	in, err := s.store.GetInspection(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(in), nil
}

func (s *Server) handleListInspections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inspections, err := s.store.ListInspections(ctx, store.InspectionFilter{
		FacilityID: request.GetString("facility_id", ""),
		Status:     request.GetString("status", ""),
		Limit:      request.GetInt("limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing inspections: %v", err)), nil
	}
	return jsonResult(inspections), nil
}

func (s *Server) handleUpdateInspection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("inspection_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: inspection_id"), nil
	}

	in, err := s.store.GetInspection(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in.Inspector = request.GetString("inspector", in.Inspector)
	in.Status = request.GetString("status", in.Status)
	in.Notes = request.GetString("notes", in.Notes)

	if err := s.store.UpdateInspection(ctx, *in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(in), nil
}

func (s *Server) handleDeleteInspection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("inspection_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: inspection_id"), nil
	}

	if err := s.store.DeleteInspection(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("inspection %s deleted", id)), nil
}

// Contaminant handlers.

func (s *Server) handleCreateContaminant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilityID, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}
	substance, err := request.RequireString("substance")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: substance"), nil
	}
	detectedAt, err := parseTimestamp(request, "detected_at")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := s.store.CreateContaminant(ctx, store.Contaminant{
		FacilityID:     facilityID,
		ShipmentID:     request.GetString("shipment_id", ""),
		Substance:      substance,
		ExplosiveLevel: request.GetString("explosive_level", ""),
		DetectedAt:     detectedAt,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating contaminant: %v", err)), nil
	}
	return jsonResult(created), nil
}

func (s *Server) handleGetContaminant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("contaminant_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: contaminant_id"), nil
	}

	c, err := s.store.GetContaminant(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c), nil
}

func (s *Server) handleListContaminants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contaminants, err := s.store.ListContaminants(ctx, store.ContaminantFilter{
		FacilityID:     request.GetString("facility_id", ""),
		ShipmentID:     request.GetString("shipment_id", ""),
		ExplosiveLevel: request.GetString("explosive_level", ""),
		Limit:          request.GetInt("limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing contaminants: %v", err)), nil
	}
	return jsonResult(contaminants), nil
}

func (s *Server) handleUpdateContaminant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("contaminant_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: contaminant_id"), nil
	}

	c, err := s.store.GetContaminant(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c.Substance = request.GetString("substance", c.Substance)
	c.ExplosiveLevel = request.GetString("explosive_level", c.ExplosiveLevel)

	if err := s.store.UpdateContaminant(ctx, *c); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c), nil
}

func (s *Server) handleDeleteContaminant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("contaminant_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: contaminant_id"), nil
	}

	if err := s.store.DeleteContaminant(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("contaminant %s deleted", id)), nil
}

// Shipment handlers.

func (s *Server) handleCreateShipment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilityID, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}
	receivedAt, err := parseTimestamp(request, "received_at")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := s.store.CreateShipment(ctx, store.Shipment{
		FacilityID: facilityID,
		Source:     request.GetString("source", ""),
		WasteType:  request.GetString("waste_type", ""),
		WeightKG:   request.GetFloat("weight_kg", 0),
		Status:     request.GetString("status", ""),
		ReceivedAt: receivedAt,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating shipment: %v", err)), nil
	}
	return jsonResult(created), nil
}

func (s *Server) handleGetShipment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("shipment_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: shipment_id"), nil
	}

	sh, err := s.store.GetShipment(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sh), nil
}

func (s *Server) handleListShipments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	shipments, err := s.store.ListShipments(ctx, store.ShipmentFilter{
		FacilityID: request.GetString("facility_id", ""),
		Source:     request.GetString("source", ""),
		Status:     request.GetString("status", ""),
		Limit:      request.GetInt("limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing shipments: %v", err)), nil
	}
	return jsonResult(shipments), nil
}

func (s *Server) handleUpdateShipment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("shipment_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: shipment_id"), nil
	}

	sh, err := s.store.GetShipment(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sh.Source = request.GetString("source", sh.Source)
	sh.WasteType = request.GetString("waste_type", sh.WasteType)
	sh.WeightKG = request.GetFloat("weight_kg", sh.WeightKG)
	sh.Status = request.GetString("status", sh.Status)

	if err := s.store.UpdateShipment(ctx, *sh); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sh), nil
}

func (s *Server) handleDeleteShipment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("shipment_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: shipment_id"), nil
	}

	if err := s.store.DeleteShipment(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("shipment %s deleted", id)), nil
}

// Waste type handlers.

func (s *Server) handleCreateWasteType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	created, err := s.store.CreateWasteType(ctx, store.WasteType{
		Name:          name,
		Category:      request.GetString("category", ""),
		Hazardous:     request.GetBool("hazardous", false),
		HandlingNotes: request.GetString("handling_notes", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating waste type: %v", err)), nil
	}
	return jsonResult(created), nil
}

func (s *Server) handleGetWasteType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("waste_type_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: waste_type_id"), nil
	}

	wt, err := s.store.GetWasteType(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(wt), nil
}

func (s *Server) handleListWasteTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := store.WasteTypeFilter{
		Category: request.GetString("category", ""),
		Limit:    request.GetInt("limit", 0),
	}
	if args := request.GetArguments(); args != nil {
		if _, ok := args["hazardous"]; ok {
			hazardous := request.GetBool("hazardous", false)
			filter.Hazardous = &hazardous
		}
	}

	types, err := s.store.ListWasteTypes(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing waste types: %v", err)), nil
	}
	return jsonResult(types), nil
}

func (s *Server) handleUpdateWasteType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("waste_type_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: waste_type_id"), nil
	}

	wt, err := s.store.GetWasteType(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	wt.Name = request.GetString("name", wt.Name)
	wt.Category = request.GetString("category", wt.Category)
	wt.Hazardous = request.GetBool("hazardous", wt.Hazardous)
	wt.HandlingNotes = request.GetString("handling_notes", wt.HandlingNotes)

	if err := s.store.UpdateWasteType(ctx, *wt); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(wt), nil
}

func (s *Server) handleDeleteWasteType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("waste_type_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: waste_type_id"), nil
	}

	if err := s.store.DeleteWasteType(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("waste type %s deleted", id)), nil
}
