// ABOUTME: CLI command for adding today's body metrics without prompts.
// ABOUTME: Shares the metric flags with the height command.
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/bodymetrics/internal/models"
	"github.com/harperreed/bodymetrics/internal/tracker"
	"github.com/spf13/cobra"
)

var addMetrics models.Metrics

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Add today's entry",
	Long: `Append today's record to the worksheet. The height is copied from the
previous row; use 'bodymetrics height' to change it.

Values are written as given and are not checked to be numbers.

Examples:
  bodymetrics add --mass 82.5 --fat 18.2 --water 55.1 --muscle 40.3
  bodymetrics a -m 82.5 -f 18.2 -w 55.1 -u 40.3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()

		return runAdd(cmd.Context(), cmd.OutOrStdout(), sess.tracker, addMetrics)
	},
}

func runAdd(ctx context.Context, out io.Writer, tr *tracker.Tracker, m models.Metrics) error {
	res, err := tr.AddDailyEntry(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	printResult(out, res)
	return nil
}

// printResult reports a completed write the way the menu loop does.
func printResult(out io.Writer, res *tracker.Result) {
	color.New(color.FgGreen).Fprintf(out, "✓ %s\n", res.Message)
	fmt.Fprintf(out, "  %s rows %s\n",
		color.New(color.Faint).Sprint(res.Action),
		joinRows(res.Rows))
}

func joinRows(rows []int) string {
	switch len(rows) {
	case 0:
		return "-"
	case 1:
		return fmt.Sprint(rows[0])
	default:
		return fmt.Sprintf("%d-%d", rows[0], rows[len(rows)-1])
	}
}

// addMetricFlags registers the four daily metric flags on cmd.
func addMetricFlags(cmd *cobra.Command, m *models.Metrics) {
	cmd.Flags().StringVarP(&m.Mass, "mass", "m", "", "current mass (kg)")
	cmd.Flags().StringVarP(&m.BodyFat, "fat", "f", "", "current body fat (%)")
	cmd.Flags().StringVarP(&m.Water, "water", "w", "", "current water composition (%)")
	cmd.Flags().StringVarP(&m.Muscle, "muscle", "u", "", "current muscle composition (%)")
}

func init() {
	addMetricFlags(addCmd, &addMetrics)
	for _, name := range []string{"mass", "fat", "water", "muscle"} {
		_ = addCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(addCmd)
}
