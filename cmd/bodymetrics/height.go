// ABOUTME: CLI command for changing the height from a date onward.
// ABOUTME: Takes metric flags for the case where today's record must be created.
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/harperreed/bodymetrics/internal/models"
	"github.com/harperreed/bodymetrics/internal/tracker"
	"github.com/spf13/cobra"
)

var heightMetrics models.Metrics

var heightCmd = &cobra.Command{
	Use:     "height <date|today> <height>",
	Aliases: []string{"h"},
	Short:   "Update height from a date onward",
	Long: `Update the height starting at a date.

  Date has a record    The height of that row and every later row is replaced.
  Past date, no record A height-only row is appended for that date.
  Today, no record     Today's full record is appended; all four metric
                       flags are required.
  Future date          Refused; nothing is written.

Examples:
  bodymetrics height 2024-03-01 181
  bodymetrics height today 181 --mass 82.5 --fat 18.2 --water 55.1 --muscle 40.3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()

		return runHeight(cmd.Context(), cmd.OutOrStdout(), sess.tracker, args[0], args[1], heightMetrics)
	},
}

func runHeight(ctx context.Context, out io.Writer, tr *tracker.Tracker, dateArg, height string, m models.Metrics) error {
	date, err := models.ParseDate(dateArg, tr.Today())
	if err != nil {
		return fmt.Errorf("date must be yyyy-mm-dd or today: %w", err)
	}

	res, err := tr.UpdateHeight(ctx, date, height, metricsFromFlags(m))
	if err != nil {
		return fmt.Errorf("failed to update height: %w", err)
	}
	printResult(out, res)
	return nil
}

// metricsFromFlags supplies m when today's record must be created, failing
// unless every metric flag was given.
func metricsFromFlags(m models.Metrics) tracker.MetricsFunc {
	return func() (models.Metrics, error) {
		if !m.Complete() {
			return models.Metrics{}, fmt.Errorf("%w: pass --mass, --fat, --water and --muscle", tracker.ErrMetricsRequired)
		}
		return m, nil
	}
}

func init() {
	addMetricFlags(heightCmd, &heightMetrics)
	rootCmd.AddCommand(heightCmd)
}
