// ABOUTME: MCP server setup for the body metrics table.
// ABOUTME: Exposes the Tracker's operations to MCP clients over stdio.
package mcp

import (
	"context"

	"github.com/harperreed/bodymetrics/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	logger    *zap.Logger
}

// NewServer creates a new MCP server backed by the given tracker.
func NewServer(t *tracker.Tracker, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bodymetrics",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   t,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
