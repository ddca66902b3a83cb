package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

// FacilityReport is the result of generate_intelligent_facility_report.
// The metrics section is always present; exactly one of AIAnalysis or
// AINote is set.
type FacilityReport struct {
	Facility    store.Facility  `json:"facility"`
	Metrics     FacilityMetrics `json:"metrics"`
	AIAnalysis  string          `json:"aiAnalysis,omitempty"`
	AINote      string          `json:"aiNote,omitempty"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// FacilityMetrics holds the deterministic baseline computed from
// recorded data, independent of AI availability.
type FacilityMetrics struct {
	Inspections   InspectionMetrics    `json:"inspections"`
	Contamination ContaminationMetrics `json:"contamination"`
	Shipments     ShipmentMetrics      `json:"shipments"`
}

type InspectionMetrics struct {
	Total          int    `json:"total"`
	Accepted       int    `json:"accepted"`
	AcceptanceRate string `json:"acceptanceRate"`
}

type ContaminationMetrics struct {
	Total          int    `json:"total"`
	HighRisk       int    `json:"highRisk"`
	RiskPercentage string `json:"riskPercentage"`
}

type ShipmentMetrics struct {
	Total         int     `json:"total"`
	TotalWeightKG float64 `json:"totalWeightKg"`
}

func (s *Server) handleFacilityReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilityID, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}
	includeRecommendations := request.GetBool("include_recommendations", false)

	fc, err := s.fetchFacilityContext(ctx, facilityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching facility data: %v", err)), nil
	}

	report := FacilityReport{
		Facility:    *fc.facility,
		Metrics:     buildFacilityMetrics(fc),
		GeneratedAt: time.Now().UTC(),
	}

	if !s.broker.IsAvailable() {
		report.AINote = aiNote(sampling.ErrUnavailable)
		return jsonResult(report), nil
	}

	analysis, err := sampling.RequestAnalysis(ctx, s.broker, reportPrompt(fc, includeRecommendations), reportContextData(fc))
	if err != nil {
		report.AINote = aiNote(err)
	} else {
		report.AIAnalysis = analysis
	}
	return jsonResult(report), nil
}

func buildFacilityMetrics(fc *facilityContext) FacilityMetrics {
	accepted := fc.acceptedInspections()
	highRisk := fc.highRiskContaminants()

	var weight float64
	for _, sh := range fc.shipments {
		weight += sh.WeightKG
	}

	return FacilityMetrics{
		Inspections: InspectionMetrics{
			Total:          len(fc.inspections),
			Accepted:       accepted,
			AcceptanceRate: formatPercent(accepted, len(fc.inspections)),
		},
		Contamination: ContaminationMetrics{
			Total:          len(fc.contaminants),
			HighRisk:       highRisk,
			RiskPercentage: formatPercent(highRisk, len(fc.contaminants)),
		},
		Shipments: ShipmentMetrics{
			Total:         len(fc.shipments),
			TotalWeightKG: weight,
		},
	}
}

func reportPrompt(fc *facilityContext, includeRecommendations bool) string {
	prompt := fmt.Sprintf(
		"Write a short operational analysis of waste facility %q based on the context data: "+
			"inspection outcomes, contamination findings, and shipment volume. "+
			"Highlight anything unusual.",
		fc.facility.Name,
	)
	if includeRecommendations {
		prompt += " Finish with a \"Recommendations\" section listing concrete next steps."
	}
	return prompt
}

func reportContextData(fc *facilityContext) map[string]any {
	return map[string]any{
		"facility":             fc.facility,
		"inspectionCount":      len(fc.inspections),
		"acceptedInspections":  fc.acceptedInspections(),
		"contaminantCount":     len(fc.contaminants),
		"highRiskContaminants": fc.highRiskContaminants(),
		"shipmentCount":        len(fc.shipments),
	}
}
