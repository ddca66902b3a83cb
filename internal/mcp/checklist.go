package mcp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ecotrace/wastewatch/internal/sampling"
	"github.com/ecotrace/wastewatch/internal/store"
)

// Focus areas offered during phase-1 elicitation. Order matters: the
// first is the elicitation fallback.
var focusAreas = []string{
	"Contamination levels",
	"Acceptance rates",
	"Processing times",
	"Waste type compliance",
}

// Focus-area selection thresholds. Heuristic policy constants, tunable.
const (
	recentContaminantWindow    = 30 * 24 * time.Hour
	recentContaminantThreshold = 10
	acceptanceRateThreshold    = 0.70
	complianceIssueThreshold   = 5

	minQuestions = 5
	maxQuestions = 7
)

// InspectionChecklist is the result of suggest_inspection_questions.
// SelectionMethod records whether the focus area came from elicitation
// or from the metric rule; QuestionSource records whether the questions
// were generated or served from the static bank.
type InspectionChecklist struct {
	FacilityID          string           `json:"facilityId"`
	FocusArea           string           `json:"focusArea"`
	SelectionMethod     string           `json:"selectionMethod"`
	QuestionSource      string           `json:"questionSource"`
	InspectionQuestions []string         `json:"inspectionQuestions"`
	Metrics             ChecklistMetrics `json:"metrics"`
	AINote              string           `json:"aiNote,omitempty"`
}

// ChecklistMetrics is the deterministic baseline driving the metric
// selection rule.
type ChecklistMetrics struct {
	RecentContaminants int    `json:"recentContaminants"`
	AcceptanceRate     string `json:"acceptanceRate"`
	ComplianceIssues   int    `json:"complianceIssues"`
}

func (s *Server) handleInspectionQuestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facilityID, err := request.RequireString("facility_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: facility_id"), nil
	}

	fc, err := s.fetchFacilityContext(ctx, facilityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetching facility data: %v", err)), nil
	}

	recent := recentContaminantCount(fc.contaminants, time.Now().Add(-recentContaminantWindow))
	accepted := fc.acceptedInspections()
	compliance := complianceIssueCount(fc.inspections)

	checklist := InspectionChecklist{
		FacilityID:      facilityID,
		SelectionMethod: methodMetricBased,
		QuestionSource:  sourceStaticBank,
		Metrics: ChecklistMetrics{
			RecentContaminants: recent,
			AcceptanceRate:     formatPercent(accepted, len(fc.inspections)),
			ComplianceIssues:   compliance,
		},
	}

	// Phase 1: focus-area selection.
	checklist.FocusArea = metricFocusArea(recent, accepted, len(fc.inspections), compliance)
	if s.broker.IsAvailable() {
		question := fmt.Sprintf("Which area should the next inspection of facility %q concentrate on?", fc.facility.Name)
		choice, err := sampling.ElicitChoice(ctx, s.broker, question, focusAreas)
		switch {
		case err != nil:
			checklist.AINote = aiNote(err)
		case choice.Fallback:
			// The reply matched no option; the metric rule stands.
			checklist.AINote = "AI section unavailable: elicitation reply matched no offered option"
		default:
			checklist.FocusArea = choice.Option
			checklist.SelectionMethod = methodAIAssisted
		}
	} else {
		checklist.AINote = aiNote(sampling.ErrUnavailable)
	}

	// Phase 2: question generation for the chosen focus area.
	checklist.InspectionQuestions = staticQuestionBank[checklist.FocusArea]
	if s.broker.IsAvailable() && checklist.AINote == "" {
		prompt := fmt.Sprintf(
			"Produce %d to %d numbered inspection checklist questions focused on %q for waste facility %q. "+
				"One question per line, numbered.",
			minQuestions, maxQuestions, checklist.FocusArea, fc.facility.Name,
		)
		reply, err := sampling.RequestAnalysis(ctx, s.broker, prompt, nil)
		if err != nil {
			checklist.AINote = aiNote(err)
		} else if questions := parseNumberedQuestions(reply); len(questions) > 0 {
			checklist.InspectionQuestions = questions
			checklist.QuestionSource = sourceAIGenerated
		} else {
			checklist.AINote = "AI section unavailable: reply could not be parsed: no numbered questions found"
		}
	}

	return jsonResult(checklist), nil
}

func recentContaminantCount(contaminants []store.Contaminant, cutoff time.Time) int {
	n := 0
	for _, c := range contaminants {
		if c.DetectedAt.After(cutoff) {
			n++
		}
	}
	return n
}

// complianceIssueCount counts rejected inspections as compliance issues.
func complianceIssueCount(inspections []store.Inspection) int {
	n := 0
	for _, in := range inspections {
		if in.Status == store.InspectionRejected {
			n++
		}
	}
	return n
}

// metricFocusArea is the deterministic focus-area selection rule,
// applied whenever elicitation is unavailable or unusable. With no
// inspections on record the acceptance rate is treated as perfect.
func metricFocusArea(recentContaminants, accepted, totalInspections, complianceIssues int) string {
	acceptanceRate := 1.0
	if totalInspections > 0 {
		acceptanceRate = float64(accepted) / float64(totalInspections)
	}

	switch {
	case recentContaminants > recentContaminantThreshold:
		return "Contamination levels"
	case acceptanceRate < acceptanceRateThreshold:
		return "Acceptance rates"
	case complianceIssues > complianceIssueThreshold:
		return "Waste type compliance"
	default:
		return "Processing times"
	}
}

var numberedLinePattern = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)

// parseNumberedQuestions extracts numbered checklist items from a
// reply, capped at maxQuestions. An unparseable reply yields nil so the
// caller substitutes the static bank.
func parseNumberedQuestions(reply string) []string {
	var questions []string
	for _, line := range strings.Split(reply, "\n") {
		m := numberedLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		questions = append(questions, strings.TrimSpace(m[1]))
		if len(questions) == maxQuestions {
			break
		}
	}
	return questions
}

// staticQuestionBank guarantees a non-empty checklist for every focus
// area when question generation fails.
var staticQuestionBank = map[string][]string{
	"Contamination levels": {
		"Are contaminated loads segregated from clean material immediately on detection?",
		"Is the contaminant log complete for the last 30 days?",
		"Are high-risk contaminants stored in approved containment?",
		"Were all recent contamination events reported to the operator on duty?",
		"Is detection equipment calibrated and within its service window?",
		"Are staff following the published decontamination procedure?",
	},
	"Acceptance rates": {
		"What share of recent loads was rejected, and for which documented reasons?",
		"Are rejection criteria applied consistently across shifts?",
		"Is the pre-acceptance screening checklist in use at the gate?",
		"Are rejected loads returned or quarantined per procedure?",
		"Do acceptance records match the weighbridge totals?",
		"Are repeat-offender sources flagged in the intake system?",
	},
	"Processing times": {
		"What is the current average dwell time from receipt to processing?",
		"Are any loads exceeding the maximum permitted holding period?",
		"Is processing equipment operating at rated throughput?",
		"Are backlog loads prioritized by hazard classification?",
		"Do shift handovers document in-progress loads?",
		"Are maintenance windows scheduled to avoid peak intake?",
	},
	"Waste type compliance": {
		"Do declared waste types match the material observed on the floor?",
		"Are hazardous waste types handled under the correct permits?",
		"Is segregation between waste categories maintained in storage?",
		"Are manifests retained and retrievable for recent shipments?",
		"Were any loads reclassified after receipt, and was that recorded?",
		"Are handling notes for special waste types posted where work happens?",
	},
}
