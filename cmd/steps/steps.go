// Package steps implements the daily-steps report command.
package steps

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mkettu/runsync/internal/conf"
	"github.com/mkettu/runsync/internal/garmin"
	"github.com/mkettu/runsync/internal/report"
	"github.com/spf13/cobra"
)

// Command returns the steps subcommand. It exports the daily step
// counts for the lookback period as CSV.
func Command(settings *conf.Settings) *cobra.Command {
	var days int
	var output string

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Export daily step counts as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := garmin.NewClient(&settings.Garmin)

			data, err := report.FetchDailySteps(cmd.Context(), client, days)
			if err != nil {
				return fmt.Errorf("fetching step data failed: %w", err)
			}
			slog.Info("retrieved step data", "days", len(data))

			var w io.Writer = os.Stdout
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer file.Close()
				w = file
			}

			if err := report.WriteCSV(w, data); err != nil {
				return err
			}

			summary := report.Summarize(data)
			slog.Info("step statistics", "days", summary.Days,
				"average", fmt.Sprintf("%.0f", summary.Average),
				"max", summary.Max, "min", summary.Min)

			if output != "" {
				slog.Info("report written", "path", output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Lookback window in days")
	cmd.Flags().StringVar(&output, "output", "", "Write CSV to this file instead of stdout")
	return cmd
}
