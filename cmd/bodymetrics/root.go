// ABOUTME: Root Cobra command for bodymetrics CLI.
// ABOUTME: Runs the interactive menu loop and holds the persistent connection flags.
package main

import (
	"github.com/harperreed/bodymetrics/internal/console"
	"github.com/spf13/cobra"
)

var (
	flagConfig        string
	flagCredentials   string
	flagSpreadsheet   string
	flagSpreadsheetID string
	flagWorksheet     string
	flagDebug         bool
	flagOnce          bool
)

var rootCmd = &cobra.Command{
	Use:   "bodymetrics",
	Short: "Record daily body metrics into a Google Sheet",
	Long: `Bodymetrics records daily body measurements into a Google Sheets worksheet.

Each row of the worksheet holds one day:

  date  height  mass  body fat  water  muscle

Running bodymetrics with no subcommand opens an interactive menu:

  1  Add today's entry. Prompts for mass, body fat, water and muscle,
     and copies the height from the previous row.
  2  Update height from a date onward. Rewrites the height of that date
     and every later row, or creates a record if the date has none.
     Future dates are refused.
  X  Quit (also "quit" and "abort").

QUICK START:

  $ bodymetrics                                  # interactive menu
  $ bodymetrics --once                           # run one operation and exit
  $ bodymetrics add --mass 82.5 --fat 18.2 --water 55.1 --muscle 40.3
  $ bodymetrics height 2024-03-01 181            # height change from a date
  $ bodymetrics list -n 7                        # last week of rows

CONNECTION:

  Access uses a Google service account. Share the spreadsheet with the
  account's email address and point --credentials at its JSON key
  (default: manager_credentials.json in the working directory).

  Settings are read from ~/.config/bodymetrics/config.json, then from a .env
  file and BODYMETRICS_* environment variables, then from flags.

MCP INTEGRATION:

  Run 'bodymetrics mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()

		c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), sess.tracker)
		c.SetSingleShot(flagOnce)
		return c.Run(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&flagOnce, "once", false, "exit after the first completed operation")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/bodymetrics/config.json)")
	pf.StringVar(&flagCredentials, "credentials", "", "service-account JSON key file")
	pf.StringVar(&flagSpreadsheet, "spreadsheet", "", "spreadsheet name to open")
	pf.StringVar(&flagSpreadsheetID, "spreadsheet-id", "", "spreadsheet ID (skips the lookup by name)")
	pf.StringVar(&flagWorksheet, "worksheet", "", "worksheet holding the data table")
	pf.BoolVar(&flagDebug, "debug", false, "log debug output to stderr")
}
