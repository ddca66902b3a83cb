package sampling

import (
	"context"
	"fmt"
	"strings"
)

// PlaceholderResponder returns a responder that answers every request
// asynchronously with canned, deterministic text. It stands in for a
// model-backed client during development and keeps the broker, helpers
// and tools exercising their real code paths.
func PlaceholderResponder(b *Broker) Responder {
	return func(ctx context.Context, req Request) error {
		go b.Resolve(req.ID, placeholderReply(req.Payload.Prompt))
		return nil
	}
}

// placeholderReply shapes a canned answer to fit what the prompt asks
// for, so the helper parsers see plausible input.
func placeholderReply(prompt string) string {
	lower := strings.ToLower(prompt)

	if strings.Contains(lower, "numeric risk score") {
		return "50\nPlaceholder assessment: no model is connected, so a neutral mid-range score is reported."
	}

	if opt, ok := firstListedOption(prompt); ok {
		return opt
	}

	if strings.Contains(lower, "numbered") {
		return "1. Placeholder question one?\n" +
			"2. Placeholder question two?\n" +
			"3. Placeholder question three?\n" +
			"4. Placeholder question four?\n" +
			"5. Placeholder question five?"
	}

	return "Placeholder analysis: no AI model is connected to this server. " +
		"The deterministic metrics included alongside this section reflect the recorded data."
}

// firstListedOption extracts the text of the first "A) ..." choice from
// an elicitation prompt.
func firstListedOption(prompt string) (string, bool) {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "A) ") {
			return strings.TrimPrefix(line, "A) "), true
		}
	}
	return "", false
}

// ResponderMode selects which responder implementation the bootstrap
// binds to the broker.
type ResponderMode string

const (
	// ModePlaceholder answers with canned deterministic text.
	ModePlaceholder ResponderMode = "placeholder"
	// ModeSession forwards requests to the connected MCP client.
	ModeSession ResponderMode = "session"
	// ModeNone leaves no responder bound; every tool falls back to
	// deterministic output.
	ModeNone ResponderMode = "none"
)

// ParseResponderMode validates a configured responder mode string.
func ParseResponderMode(s string) (ResponderMode, error) {
	switch ResponderMode(s) {
	case ModePlaceholder, ModeSession, ModeNone:
		return ResponderMode(s), nil
	case "":
		return ModePlaceholder, nil
	default:
		return "", fmt.Errorf("unknown responder mode %q: must be one of placeholder, session, none", s)
	}
}
