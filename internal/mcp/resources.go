// ABOUTME: MCP resource implementations for body metrics.
// ABOUTME: Provides the bodymetrics://latest resource.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/bodymetrics/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const latestURI = "bodymetrics://latest"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         latestURI,
		Name:        "Latest Body Metrics",
		Description: "The newest row of the body metrics table",
		MIMEType:    "application/json",
	}, s.handleLatestResource)
}

func (s *Server) handleLatestResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var result any
	rec, err := s.tracker.Latest(ctx)
	switch {
	case errors.Is(err, tracker.ErrNoRecords):
		result = map[string]any{"message": "No records found."}
	case err != nil:
		return nil, fmt.Errorf("failed to read latest record: %w", err)
	default:
		result = toRecordOutput(rec)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      latestURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
