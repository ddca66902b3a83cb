package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Facility tools.

var createFacilityTool = mcp.NewTool("create_facility",
	mcp.WithDescription("Register a new waste-processing facility."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Facility name"),
	),
	mcp.WithString("location",
		mcp.Description("Facility location"),
	),
	mcp.WithNumber("capacity_tons",
		mcp.Description("Processing capacity in tons"),
	),
	mcp.WithString("status",
		mcp.Description("Facility status (default active)"),
		mcp.Enum("active", "suspended", "closed"),
	),
)

var getFacilityTool = mcp.NewTool("get_facility",
	mcp.WithDescription("Get a facility by id."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility id"),
	),
)

var listFacilitiesTool = mcp.NewTool("list_facilities",
	mcp.WithDescription("List facilities, optionally filtered by status."),
	mcp.WithString("status",
		mcp.Description("Filter by status"),
		mcp.Enum("active", "suspended", "closed"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results"),
	),
)

var updateFacilityTool = mcp.NewTool("update_facility",
	mcp.WithDescription("Update a facility. Only the provided fields change."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility id"),
	),
	mcp.WithString("name", mcp.Description("New name")),
	mcp.WithString("location", mcp.Description("New location")),
	mcp.WithNumber("capacity_tons", mcp.Description("New capacity in tons")),
	mcp.WithString("status",
		mcp.Description("New status"),
		mcp.Enum("active", "suspended", "closed"),
	),
)

var deleteFacilityTool = mcp.NewTool("delete_facility",
	mcp.WithDescription("Delete a facility."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility id"),
	),
)

// Inspection tools.

var createInspectionTool = mcp.NewTool("create_inspection",
	mcp.WithDescription("Record a facility inspection."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility the inspection belongs to"),
	),
	mcp.WithString("inspector",
		mcp.Description("Inspector name"),
	),
	mcp.WithString("status",
		mcp.Description("Inspection outcome (default pending)"),
		mcp.Enum("accepted", "rejected", "pending"),
	),
	mcp.WithString("notes",
		mcp.Description("Free-form notes"),
	),
	mcp.WithString("inspected_at",
		mcp.Description("Inspection timestamp, RFC 3339 (default now)"),
	),
)

var getInspectionTool = mcp.NewTool("get_inspection",
	mcp.WithDescription("Get an inspection by id."),
	mcp.WithString("inspection_id",
		mcp.Required(),
		mcp.Description("Inspection id"),
	),
)

var listInspectionsTool = mcp.NewTool("list_inspections",
	mcp.WithDescription("List inspections, optionally filtered by facility or status."),
	mcp.WithString("facility_id", mcp.Description("Filter by facility")),
	mcp.WithString("status",
		mcp.Description("Filter by status"),
		mcp.Enum("accepted", "rejected", "pending"),
	),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
)

var updateInspectionTool = mcp.NewTool("update_inspection",
	mcp.WithDescription("Update an inspection. Only the provided fields change."),
	mcp.WithString("inspection_id",
		mcp.Required(),
		mcp.Description("Inspection id"),
	),
	mcp.WithString("inspector", mcp.Description("New inspector name")),
	mcp.WithString("status",
		mcp.Description("New status"),
		mcp.Enum("accepted", "rejected", "pending"),
	),
	mcp.WithString("notes", mcp.Description("New notes")),
)

var deleteInspectionTool = mcp.NewTool("delete_inspection",
	mcp.WithDescription("Delete an inspection."),
	mcp.WithString("inspection_id",
		mcp.Required(),
		mcp.Description("Inspection id"),
	),
)

// Contaminant tools.

var createContaminantTool = mcp.NewTool("create_contaminant",
	mcp.WithDescription("Record a detected contaminant."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility where the contaminant was detected"),
	),
	mcp.WithString("substance",
		mcp.Required(),
		mcp.Description("Substance name"),
	),
	mcp.WithString("shipment_id",
		mcp.Description("Shipment the contaminant arrived on, if known"),
	),
	mcp.WithString("explosive_level",
		mcp.Description("Hazard classification (default low)"),
		mcp.Enum("low", "medium", "high"),
	),
	mcp.WithString("detected_at",
		mcp.Description("Detection timestamp, RFC 3339 (default now)"),
	),
)

var getContaminantTool = mcp.NewTool("get_contaminant",
	mcp.WithDescription("Get a contaminant record by id."),
	mcp.WithString("contaminant_id",
		mcp.Required(),
		mcp.Description("Contaminant id"),
	),
)

var listContaminantsTool = mcp.NewTool("list_contaminants",
	mcp.WithDescription("List contaminants, optionally filtered by facility, shipment or hazard level."),
	mcp.WithString("facility_id", mcp.Description("Filter by facility")),
	mcp.WithString("shipment_id", mcp.Description("Filter by shipment")),
	mcp.WithString("explosive_level",
		mcp.Description("Filter by hazard classification"),
		mcp.Enum("low", "medium", "high"),
	),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
)

var updateContaminantTool = mcp.NewTool("update_contaminant",
	mcp.WithDescription("Update a contaminant record. Only the provided fields change."),
	mcp.WithString("contaminant_id",
		mcp.Required(),
		mcp.Description("Contaminant id"),
	),
	mcp.WithString("substance", mcp.Description("New substance name")),
	mcp.WithString("explosive_level",
		mcp.Description("New hazard classification"),
		mcp.Enum("low", "medium", "high"),
	),
)

var deleteContaminantTool = mcp.NewTool("delete_contaminant",
	mcp.WithDescription("Delete a contaminant record."),
	mcp.WithString("contaminant_id",
		mcp.Required(),
		mcp.Description("Contaminant id"),
	),
)

// Shipment tools.

var createShipmentTool = mcp.NewTool("create_shipment",
	mcp.WithDescription("Record an inbound waste shipment."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Receiving facility"),
	),
	mcp.WithString("source",
		mcp.Description("Declared source of the shipment"),
	),
	mcp.WithString("waste_type",
		mcp.Description("Waste type name"),
	),
	mcp.WithNumber("weight_kg",
		mcp.Description("Shipment weight in kilograms"),
	),
	mcp.WithString("status",
		mcp.Description("Shipment status (default received)"),
		mcp.Enum("received", "processing", "processed", "rejected"),
	),
	mcp.WithString("received_at",
		mcp.Description("Receipt timestamp, RFC 3339 (default now)"),
	),
)

var getShipmentTool = mcp.NewTool("get_shipment",
	mcp.WithDescription("Get a shipment by id."),
	mcp.WithString("shipment_id",
		mcp.Required(),
		mcp.Description("Shipment id"),
	),
)

var listShipmentsTool = mcp.NewTool("list_shipments",
	mcp.WithDescription("List shipments, optionally filtered by facility, source or status."),
	mcp.WithString("facility_id", mcp.Description("Filter by facility")),
	mcp.WithString("source", mcp.Description("Filter by declared source")),
	mcp.WithString("status",
		mcp.Description("Filter by status"),
		mcp.Enum("received", "processing", "processed", "rejected"),
	),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
)

var updateShipmentTool = mcp.NewTool("update_shipment",
	mcp.WithDescription("Update a shipment. Only the provided fields change."),
	mcp.WithString("shipment_id",
		mcp.Required(),
		mcp.Description("Shipment id"),
	),
	mcp.WithString("source", mcp.Description("New source")),
	mcp.WithString("waste_type", mcp.Description("New waste type")),
	mcp.WithNumber("weight_kg", mcp.Description("New weight in kilograms")),
	mcp.WithString("status",
		mcp.Description("New status"),
		mcp.Enum("received", "processing", "processed", "rejected"),
	),
)

var deleteShipmentTool = mcp.NewTool("delete_shipment",
	mcp.WithDescription("Delete a shipment."),
	mcp.WithString("shipment_id",
		mcp.Required(),
		mcp.Description("Shipment id"),
	),
)

// Waste type tools.

var createWasteTypeTool = mcp.NewTool("create_waste_type",
	mcp.WithDescription("Register a waste-type category."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Waste type name"),
	),
	mcp.WithString("category",
		mcp.Description("Broad category (default general)"),
	),
	mcp.WithBoolean("hazardous",
		mcp.Description("Whether the waste type is hazardous"),
	),
	mcp.WithString("handling_notes",
		mcp.Description("Special handling instructions"),
	),
)

var getWasteTypeTool = mcp.NewTool("get_waste_type",
	mcp.WithDescription("Get a waste type by id."),
	mcp.WithString("waste_type_id",
		mcp.Required(),
		mcp.Description("Waste type id"),
	),
)

var listWasteTypesTool = mcp.NewTool("list_waste_types",
	mcp.WithDescription("List waste types, optionally filtered by category or hazard flag."),
	mcp.WithString("category", mcp.Description("Filter by category")),
	mcp.WithBoolean("hazardous", mcp.Description("Filter by hazard flag")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
)

var updateWasteTypeTool = mcp.NewTool("update_waste_type",
	mcp.WithDescription("Update a waste type. Only the provided fields change."),
	mcp.WithString("waste_type_id",
		mcp.Required(),
		mcp.Description("Waste type id"),
	),
	mcp.WithString("name", mcp.Description("New name")),
	mcp.WithString("category", mcp.Description("New category")),
	mcp.WithBoolean("hazardous", mcp.Description("New hazard flag")),
	mcp.WithString("handling_notes", mcp.Description("New handling notes")),
)

var deleteWasteTypeTool = mcp.NewTool("delete_waste_type",
	mcp.WithDescription("Delete a waste type."),
	mcp.WithString("waste_type_id",
		mcp.Required(),
		mcp.Description("Waste type id"),
	),
)

// Insight tools. These merge deterministic metrics with optional
// AI-generated sections obtained via sampling.

var facilityReportTool = mcp.NewTool("generate_intelligent_facility_report",
	mcp.WithDescription("Generate a facility report combining computed metrics with an AI analysis section when a sampling responder is available."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility to report on"),
	),
	mcp.WithBoolean("include_recommendations",
		mcp.Description("Ask the AI analysis to include a recommendations section"),
	),
)

var shipmentRiskTool = mcp.NewTool("analyze_shipment_risk",
	mcp.WithDescription("Assess the contamination risk of a shipment using its contaminants and the declared source's history. Falls back to a formula-based score when AI assistance is unavailable."),
	mcp.WithString("shipment_id",
		mcp.Required(),
		mcp.Description("Shipment to assess"),
	),
)

var inspectionQuestionsTool = mcp.NewTool("suggest_inspection_questions",
	mcp.WithDescription("Suggest a focused inspection checklist for a facility. Focus area selection and question generation use sampling when available, with deterministic fallbacks."),
	mcp.WithString("facility_id",
		mcp.Required(),
		mcp.Description("Facility to build a checklist for"),
	),
)
