package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

// Selection / generation method labels recorded in insight results so
// callers can tell real AI output from deterministic fallback.
const (
	methodAIAssisted  = "AI-assisted"
	methodMetricBased = "metric-based"
	methodFormula     = "formula-based"

	sourceAIGenerated = "AI-generated"
	sourceStaticBank  = "static-bank"
)

// facilityContext aggregates the domain records one insight tool call
// needs. It lives for a single invocation and is never shared.
type facilityContext struct {
	facility     *store.Facility
	inspections  []store.Inspection
	contaminants []store.Contaminant
	shipments    []store.Shipment
}

// fetchFacilityContext loads the facility and its related records. The
// three list reads are issued concurrently. A missing facility returns
// store.ErrNotFound before any related fetch happens.
func (s *Server) fetchFacilityContext(ctx context.Context, facilityID string) (*facilityContext, error) {
	facility, err := s.store.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	fc := &facilityContext{facility: facility}
	var insErr, conErr, shipErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		fc.inspections, insErr = s.store.ListInspectionsByFacility(ctx, facilityID)
	}()
	go func() {
		defer wg.Done()
		fc.contaminants, conErr = s.store.ListContaminantsByFacility(ctx, facilityID)
	}()
	go func() {
		defer wg.Done()
		fc.shipments, shipErr = s.store.ListShipmentsByFacility(ctx, facilityID)
	}()
	wg.Wait()

	for _, err := range []error{insErr, conErr, shipErr} {
		if err != nil {
			return nil, err
		}
	}
	return fc, nil
}

func (fc *facilityContext) acceptedInspections() int {
	n := 0
	for _, in := range fc.inspections {
		if in.Accepted() {
			n++
		}
	}
	return n
}

func (fc *facilityContext) highRiskContaminants() int {
	n := 0
	for _, c := range fc.contaminants {
		if c.HighRisk() {
			n++
		}
	}
	return n
}

// formatPercent renders n/d as "NN.NN%". A zero denominator yields
// "0.00%" rather than an error; the raw counts are reported alongside.
func formatPercent(n, d int) string {
	if d == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(d)*100)
}

// aiNote converts a sampling failure into the structured note embedded
// in tool results, naming which error kind occurred. Sampling failures
// never fail the tool call itself.
func aiNote(err error) string {
	var perr *sampling.ParseError
	switch {
	case errors.Is(err, sampling.ErrUnavailable):
		return "AI section unavailable: no responder registered"
	case errors.Is(err, sampling.ErrTimeout):
		return "AI section unavailable: request timed out"
	case errors.As(err, &perr):
		return "AI section unavailable: reply could not be parsed: " + perr.Reason
	default:
		return "AI section unavailable: responder failed: " + err.Error()
	}
}
