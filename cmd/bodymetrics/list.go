// ABOUTME: CLI command for listing worksheet rows.
// ABOUTME: Prints the newest records first with a row number prefix.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/bodymetrics/internal/tracker"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent records",
	Long: `List the most recent rows of the worksheet, newest first.

OUTPUT FORMAT:

  Each line shows: ROW  DATE  HEIGHT  MASS  BODY_FAT  WATER  MUSCLE

  Height-only rows (created by a height change on a past date) are marked.

EXAMPLES:

  bodymetrics list          # Show last 20 rows
  bodymetrics list -n 7     # Show the last week`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()

		return runList(cmd.Context(), cmd.OutOrStdout(), sess.tracker, listLimit)
	},
}

func runList(ctx context.Context, out io.Writer, tr *tracker.Tracker, limit int) error {
	records, err := tr.Records(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, r := range records {
		if r.HeightOnly() {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(r.Row), 5)),
				padRight(truncate(r.RawDate, 12), 12),
				padRight(r.Height, 8),
				faint.Sprint("(height only)"))
			continue
		}
		fmt.Fprintf(out, "%s %s %s %s %s %s %s\n",
			faint.Sprint(padRight(fmt.Sprint(r.Row), 5)),
			padRight(truncate(r.RawDate, 12), 12),
			padRight(r.Height, 8),
			padRight(r.Mass, 8),
			padRight(r.BodyFat, 8),
			padRight(r.Water, 8),
			r.Muscle)
	}

	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
