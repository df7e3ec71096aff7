// Package sync implements the default command: ingest the most recent
// running activity from Garmin Connect into the configured store.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkettu/runsync/internal/conf"
	"github.com/mkettu/runsync/internal/datastore"
	"github.com/mkettu/runsync/internal/garmin"
	"github.com/mkettu/runsync/internal/ingest"
	"github.com/spf13/cobra"
)

// Command returns the sync subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync the latest running activity into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), settings)
		},
	}
}

// Run executes one full sync run. It is also what the bare root
// command invokes.
func Run(ctx context.Context, settings *conf.Settings) error {
	store, err := datastore.New(settings)
	if err != nil {
		return err
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing database failed", "error", err)
		}
	}()

	client := garmin.NewClient(&settings.Garmin)
	coordinator := ingest.New(settings, client, store)

	result, err := coordinator.SyncLatestRun(ctx)
	if err != nil {
		return fmt.Errorf("sync failed (%s): %w", result.Reason, err)
	}

	slog.Info("sync run finished", "outcome", result.Outcome.String(),
		"external_id", result.ExternalID, "samples", result.SampleCount)
	return nil
}
