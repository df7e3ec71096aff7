// Package activities implements the read-only batch listing command.
package activities

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mkettu/runsync/internal/conf"
	"github.com/mkettu/runsync/internal/datastore"
	"github.com/mkettu/runsync/internal/garmin"
	"github.com/mkettu/runsync/internal/ingest"
	"github.com/spf13/cobra"
)

// Command returns the activities subcommand. By default it lists the
// running activities within the lookback window from Garmin Connect
// without writing anything, with --stored it lists what has already
// been persisted instead.
func Command(settings *conf.Settings) *cobra.Command {
	var days int
	var stored bool

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List recent running activities without syncing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stored {
				return listStored(settings, settings.Sync.ListLimit)
			}

			client := garmin.NewClient(&settings.Garmin)
			coordinator := ingest.New(settings, client, nil)

			recent, err := coordinator.ActivitiesSince(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("listing activities failed: %w", err)
			}
			return writeRemoteTable(recent)
		},
	}

	cmd.Flags().IntVar(&days, "days", settings.Sync.DaysBack, "Lookback window in days")
	cmd.Flags().BoolVar(&stored, "stored", false, "List already persisted activities instead of remote ones")
	return cmd
}

func listStored(settings *conf.Settings, limit int) error {
	store, err := datastore.New(settings)
	if err != nil {
		return err
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	activities, err := store.LatestActivities(limit)
	if err != nil {
		return err
	}
	return writeStoredTable(activities)
}

func writeRemoteTable(summaries []garmin.ActivitySummary) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tNAME\tDISTANCE (m)\tDURATION (s)")

	for _, s := range summaries {
		id := "-"
		if s.ActivityID != nil {
			id = fmt.Sprintf("%d", *s.ActivityID)
		}
		distance := "-"
		if s.Distance != nil {
			distance = fmt.Sprintf("%.0f", *s.Distance)
		}
		duration := "-"
		if s.Duration != nil {
			duration = fmt.Sprintf("%.0f", *s.Duration)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id, s.StartTimeLocal, s.ActivityName, distance, duration)
	}

	return w.Flush()
}

func writeStoredTable(activities []datastore.Activity) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "EXTERNAL ID\tSTART\tDISTANCE (m)\tDURATION (s)\tPACE (s/km)")

	for _, a := range activities {
		pace := "-"
		if a.AvgPaceSecondsPerKm != nil {
			pace = fmt.Sprintf("%.2f", *a.AvgPaceSecondsPerKm)
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%s\n",
			a.ExternalID, a.StartTime.Format("2006-01-02 15:04"), a.DistanceMeters, a.DurationSeconds, pace)
	}

	return w.Flush()
}
