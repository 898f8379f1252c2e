// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/bodymetrics/internal/logger"
	"github.com/harperreed/bodymetrics/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and writes to the same worksheet as
the interactive menu. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "bodymetrics": {
        "command": "bodymetrics",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_daily_entry   Append today's record
  update_height     Change the height from a date onward
  next_row          Row number the next record goes to
  list_records      Most recent records, newest first

AVAILABLE RESOURCES:

  bodymetrics://latest   The newest row`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sess, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		server, err := mcp.NewServer(sess.tracker, logger.Named(sess.logger, "mcp"))
		if err != nil {
			return err
		}

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
