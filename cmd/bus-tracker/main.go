package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	bustracker "github.com/martazahmad1/bus-tracker"
	"github.com/martazahmad1/bus-tracker/config"
)

var version = "dev"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "bus-tracker",
		Short:         "Track a single vehicle's live position on a map.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yml")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Poll the location feed and serve the live map UI.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadAppConfig(configPath); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := bustracker.NewLogger(config.Config.Logging.Level)
			tracker := bustracker.NewTracker(config.Config, logger)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go tracker.Run(ctx)

			bustracker.StartServer(tracker, logger)
			bustracker.HandleGracefulShutdown(cancel, logger)
			return nil
		},
	}

	poll := &cobra.Command{
		Use:   "poll",
		Short: "Fetch one sample from the configured feed and print it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadAppConfig(configPath); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			timeout := time.Duration(config.Config.Feed.TimeoutMS) * time.Millisecond
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			sample, err := bustracker.NewSource(config.Config.Feed).Fetch(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f, %.6f\n", sample.Lat, sample.Lon)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tracker version.",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	root.AddCommand(serve, poll, versionCmd)

	if err := root.Execute(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
