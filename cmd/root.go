package cmd

import (
	"github.com/mkettu/runsync/cmd/activities"
	"github.com/mkettu/runsync/cmd/steps"
	syncmd "github.com/mkettu/runsync/cmd/sync"
	"github.com/mkettu/runsync/internal/conf"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCommand creates and returns the root command. Invoking the
// binary without arguments runs a sync, the historical entry point of
// this job.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "runsync",
		Short: "Sync Garmin Connect running activities into a relational store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return syncmd.Run(cmd.Context(), settings)
		},
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		syncmd.Command(settings),
		activities.Command(settings),
		steps.Command(settings),
	)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
}
