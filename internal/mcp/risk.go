package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

// RiskAssessment is the result of analyze_shipment_risk. RiskScore is
// AI-derived when possible and formula-based otherwise; risk factors
// and recommended actions are always derived from the recorded counts.
type RiskAssessment struct {
	ShipmentID         string   `json:"shipmentId"`
	Source             string   `json:"source"`
	RiskScore          int      `json:"riskScore"`
	ScoreMethod        string   `json:"scoreMethod"`
	Reasoning          string   `json:"reasoning,omitempty"`
	AINote             string   `json:"aiNote,omitempty"`
	RiskFactors        []string `json:"riskFactors"`
	RecommendedActions []string `json:"recommendedActions"`

	ContaminantCount              int `json:"contaminantCount"`
	HighRiskContaminantCount      int `json:"highRiskContaminantCount"`
	SourceHistoryContaminantCount int `json:"sourceHistoryContaminantCount"`
}

// shipmentContext aggregates the records one risk analysis needs: the
// shipment's own contaminants plus the contamination history of every
// prior shipment declared from the same source.
type shipmentContext struct {
	shipment           *store.Shipment
	contaminants       []store.Contaminant
	sourceShipments    []store.Shipment
	sourceContaminants int
}

func (s *Server) handleShipmentRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	shipmentID, err := request.RequireString("shipment_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: shipment_id"), nil
	}

	sc, err := s.fetchShipmentContext(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching shipment data: %v", err)), nil
	}

	assessment := buildRiskAssessment(sc)

	if !s.broker.IsAvailable() {
		assessment.AINote = aiNote(sampling.ErrUnavailable)
		return jsonResult(assessment), nil
	}

	score, err := sampling.RequestRiskScore(ctx, s.broker, riskContextText(sc))
	if err != nil {
		assessment.AINote = aiNote(err)
	} else {
		assessment.RiskScore = score.Score
		assessment.ScoreMethod = methodAIAssisted
		assessment.Reasoning = score.Reasoning
	}
	return jsonResult(assessment), nil
}

// fetchShipmentContext loads the shipment, then its contaminants and
// the same-source shipment history concurrently, then the historical
// shipments' contaminant counts concurrently.
func (s *Server) fetchShipmentContext(ctx context.Context, shipmentID string) (*shipmentContext, error) {
	shipment, err := s.store.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	sc := &shipmentContext{shipment: shipment}
	var conErr, srcErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sc.contaminants, conErr = s.store.ListContaminantsByShipment(ctx, shipmentID)
	}()
	go func() {
		defer wg.Done()
		sc.sourceShipments, srcErr = s.store.ListShipmentsBySource(ctx, shipment.Source, shipmentID)
	}()
	wg.Wait()
	if conErr != nil {
		return nil, conErr
	}
	if srcErr != nil {
		return nil, srcErr
	}

	counts := make([]int, len(sc.sourceShipments))
	errs := make([]error, len(sc.sourceShipments))
	for i, sh := range sc.sourceShipments {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			cs, err := s.store.ListContaminantsByShipment(ctx, id)
			counts[i], errs[i] = len(cs), err
		}(i, sh.ID)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		sc.sourceContaminants += counts[i]
	}
	return sc, nil
}

func (sc *shipmentContext) highRiskCount() int {
	n := 0
	for _, c := range sc.contaminants {
		if c.HighRisk() {
			n++
		}
	}
	return n
}

// buildRiskAssessment computes the deterministic baseline: the
// formula-based score plus the rule-derived factor and action lists.
func buildRiskAssessment(sc *shipmentContext) RiskAssessment {
	contaminantCount := len(sc.contaminants)
	highRisk := sc.highRiskCount()

	a := RiskAssessment{
		ShipmentID:                    sc.shipment.ID,
		Source:                        sc.shipment.Source,
		RiskScore:                     fallbackRiskScore(contaminantCount, highRisk, sc.sourceContaminants),
		ScoreMethod:                   methodFormula,
		ContaminantCount:              contaminantCount,
		HighRiskContaminantCount:      highRisk,
		SourceHistoryContaminantCount: sc.sourceContaminants,
	}

	if highRisk > 0 {
		a.RiskFactors = append(a.RiskFactors, "High-risk contaminants present")
		a.RecommendedActions = append(a.RecommendedActions, "Immediate inspection required")
	}
	if contaminantCount > 3 {
		a.RiskFactors = append(a.RiskFactors, "Multiple contaminants detected")
		a.RecommendedActions = append(a.RecommendedActions, "Request detailed manifest from source")
	}
	if sc.sourceContaminants > 5 {
		a.RiskFactors = append(a.RiskFactors, "Source has a history of contaminated shipments")
		a.RecommendedActions = append(a.RecommendedActions, "Flag source for enhanced screening")
	}
	if len(a.RiskFactors) == 0 {
		a.RiskFactors = append(a.RiskFactors, "No known contamination indicators")
		a.RecommendedActions = append(a.RecommendedActions, "Standard processing")
	}
	return a
}

// fallbackRiskScore is the deterministic score used whenever the AI
// score is unavailable or unparseable. The weights are tunable policy
// constants kept for behavioral compatibility.
func fallbackRiskScore(contaminants, highRisk, sourceHistory int) int {
	score := contaminants*10 + highRisk*25 + sourceHistory*2
	if score > 100 {
		return 100
	}
	return score
}

func riskContextText(sc *shipmentContext) string {
	return fmt.Sprintf(
		"Shipment %s from source %q carrying %q (%.0f kg): %d contaminants detected (%d high risk). "+
			"The same source has %d contaminants on record across %d prior shipments.",
		sc.shipment.ID, sc.shipment.Source, sc.shipment.WasteType, sc.shipment.WeightKG,
		len(sc.contaminants), sc.highRiskCount(),
		sc.sourceContaminants, len(sc.sourceShipments),
	)
}
