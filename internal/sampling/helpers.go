package sampling

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RequestAnalysis asks the respondent for free-form analysis of the
// given context data and returns the reply text unmodified.
// ErrUnavailable, ErrTimeout and responder failures propagate untouched.
func RequestAnalysis(ctx context.Context, b *Broker, prompt string, contextData map[string]any) (string, error) {
	return b.Send(ctx, Payload{Prompt: prompt, Context: contextData})
}

// RiskScore is a numeric risk assessment parsed from a sampling reply.
type RiskScore struct {
	Score     int    // always within [0,100]
	Reasoning string
}

var firstIntPattern = regexp.MustCompile(`-?\d+`)

// RequestRiskScore asks the respondent for a 0-100 risk score with
// rationale and parses the reply by best-effort extraction: the first
// integer found is the score, the remaining text is the reasoning. A
// reply with no extractable integer yields a *ParseError so callers can
// apply their own numeric fallback. The score is clamped to [0,100].
func RequestRiskScore(ctx context.Context, b *Broker, contextText string) (RiskScore, error) {
	prompt := "Assess the risk described below. Respond with a numeric risk score " +
		"between 0 and 100 on the first line, followed by your reasoning.\n\n" + contextText

	reply, err := b.Send(ctx, Payload{Prompt: prompt})
	if err != nil {
		return RiskScore{}, err
	}

	loc := firstIntPattern.FindStringIndex(reply)
	if loc == nil {
		return RiskScore{}, &ParseError{Raw: reply, Reason: "no numeric score in reply"}
	}

	score, err := strconv.Atoi(reply[loc[0]:loc[1]])
	if err != nil {
		return RiskScore{}, &ParseError{Raw: reply, Reason: fmt.Sprintf("score %q not an integer", reply[loc[0]:loc[1]])}
	}
	score = clampScore(score)

	reasoning := strings.TrimSpace(reply[loc[1]:])
	if reasoning == "" {
		reasoning = strings.TrimSpace(reply[:loc[0]])
	}
	return RiskScore{Score: score, Reasoning: reasoning}, nil
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Choice is the outcome of an elicitation. Option is always a member of
// the options the caller supplied; Fallback marks a reply that matched
// nothing, in which case the first option is selected.
type Choice struct {
	Option   string
	Fallback bool
}

// ElicitChoice asks the respondent to pick one of options, enumerated
// as lettered choices. The reply is matched first exactly, then by
// case-insensitive substring containment against each option in order.
func ElicitChoice(ctx context.Context, b *Broker, question string, options []string) (Choice, error) {
	if len(options) == 0 {
		return Choice{}, fmt.Errorf("elicit choice: no options given")
	}

	var sb strings.Builder
	sb.WriteString(question)
	sb.WriteString("\n\nChoose exactly one of the following options and answer with its text:\n")
	for i, opt := range options {
		fmt.Fprintf(&sb, "%c) %s\n", 'A'+i, opt)
	}

	reply, err := b.Send(ctx, Payload{Prompt: sb.String()})
	if err != nil {
		return Choice{}, err
	}

	answer := strings.TrimSpace(reply)
	for _, opt := range options {
		if answer == opt {
			return Choice{Option: opt}, nil
		}
	}
	lower := strings.ToLower(answer)
	for _, opt := range options {
		if strings.Contains(lower, strings.ToLower(opt)) {
			return Choice{Option: opt}, nil
		}
	}
	return Choice{Option: options[0], Fallback: true}, nil
}
