package mcp

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing waste-management CRUD tools and
// the sampling-aware insight tools.
type Server struct {
	store  *store.Store
	broker *sampling.Broker
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over the given store and sampling
// broker. The broker is shared with the bootstrap code, which binds a
// responder before serving.
func NewServer(st *store.Store, broker *sampling.Broker) *Server {
	s := &Server{
		store:  st,
		broker: broker,
	}

	s.mcp = server.NewMCPServer(
		"wastewatch",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.mcp.EnableSampling()

	s.registerTools()

	return s
}

// BindResponder attaches the configured responder implementation to the
// broker. ModeNone leaves sampling unavailable so every insight tool
// uses its deterministic fallback.
func (s *Server) BindResponder(mode sampling.ResponderMode) {
	switch mode {
	case sampling.ModePlaceholder:
		s.broker.RegisterResponder(sampling.PlaceholderResponder(s.broker))
	case sampling.ModeSession:
		s.broker.RegisterResponder(s.sessionResponder())
	case sampling.ModeNone:
		// nothing bound
	}
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	// Facility CRUD
	s.mcp.AddTool(createFacilityTool, s.handleCreateFacility)
	s.mcp.AddTool(getFacilityTool, s.handleGetFacility)
	s.mcp.AddTool(listFacilitiesTool, s.handleListFacilities)
	s.mcp.AddTool(updateFacilityTool, s.handleUpdateFacility)
	s.mcp.AddTool(deleteFacilityTool, s.handleDeleteFacility)

	// Inspection CRUD
	s.mcp.AddTool(createInspectionTool, s.handleCreateInspection)
	s.mcp.AddTool(getInspectionTool, s.handleGetInspection)
	s.mcp.AddTool(listInspectionsTool, s.handleListInspections)
	s.mcp.AddTool(updateInspectionTool, s.handleUpdateInspection)
	s.mcp.AddTool(deleteInspectionTool, s.handleDeleteInspection)

	// Contaminant CRUD
	s.mcp.AddTool(createContaminantTool, s.handleCreateContaminant)
	s.mcp.AddTool(getContaminantTool, s.handleGetContaminant)
	s.mcp.AddTool(listContaminantsTool, s.handleListContaminants)
	s.mcp.AddTool(updateContaminantTool, s.handleUpdateContaminant)
	s.mcp.AddTool(deleteContaminantTool, s.handleDeleteContaminant)

	// Shipment CRUD
	s.mcp.AddTool(createShipmentTool, s.handleCreateShipment)
	s.mcp.AddTool(getShipmentTool, s.handleGetShipment)
	s.mcp.AddTool(listShipmentsTool, s.handleListShipments)
	s.mcp.AddTool(updateShipmentTool, s.handleUpdateShipment)
	s.mcp.AddTool(deleteShipmentTool, s.handleDeleteShipment)

	// Waste type CRUD
	s.mcp.AddTool(createWasteTypeTool, s.handleCreateWasteType)
	s.mcp.AddTool(getWasteTypeTool, s.handleGetWasteType)
	s.mcp.AddTool(listWasteTypesTool, s.handleListWasteTypes)
	s.mcp.AddTool(updateWasteTypeTool, s.handleUpdateWasteType)
	s.mcp.AddTool(deleteWasteTypeTool, s.handleDeleteWasteType)

	// Sampling-aware insight tools
	s.mcp.AddTool(facilityReportTool, s.handleFacilityReport)
	s.mcp.AddTool(shipmentRiskTool, s.handleShipmentRisk)
	s.mcp.AddTool(inspectionQuestionsTool, s.handleInspectionQuestions)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// HTTPHandler returns the streamable-HTTP transport for mounting under
// an HTTP router.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}
