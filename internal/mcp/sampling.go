package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ecotrace/wastewatch/internal/sampling"
)

// samplingMaxTokens bounds replies requested from the client.
const samplingMaxTokens = 2000

// sessionResponder forwards broker requests to the connected MCP client
// as sampling/createMessage and feeds the outcome back into the broker.
// The client session is taken from the tool-call context, so requests
// issued outside a session fail synchronously.
func (s *Server) sessionResponder() sampling.Responder {
	return func(ctx context.Context, req sampling.Request) error {
		srv := server.ServerFromContext(ctx)
		if srv == nil {
			return fmt.Errorf("no MCP session in context")
		}

		msg := mcp.CreateMessageRequest{
			CreateMessageParams: mcp.CreateMessageParams{
				Messages: []mcp.SamplingMessage{
					{
						Role:    mcp.RoleUser,
						Content: mcp.TextContent{Type: "text", Text: renderPayload(req.Payload)},
					},
				},
				SystemPrompt: "You are assisting a waste-management facility operator. Be concise and factual.",
				MaxTokens:    samplingMaxTokens,
			},
		}

		go func() {
			result, err := srv.RequestSampling(ctx, msg)
			if err != nil {
				s.broker.Fail(req.ID, err)
				return
			}
			text, ok := textFromContent(result.Content)
			if !ok {
				s.broker.Fail(req.ID, fmt.Errorf("client returned non-text content"))
				return
			}
			s.broker.Resolve(req.ID, text)
		}()
		return nil
	}
}

// renderPayload flattens a sampling payload into one prompt string,
// appending the structured context as JSON when present.
func renderPayload(p sampling.Payload) string {
	if len(p.Context) == 0 {
		return p.Prompt
	}
	data, err := json.MarshalIndent(p.Context, "", "  ")
	if err != nil {
		return p.Prompt
	}
	return p.Prompt + "\n\nContext data:\n" + string(data)
}

func textFromContent(content any) (string, bool) {
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text, true
	case *mcp.TextContent:
		return c.Text, true
	default:
		return "", false
	}
}
