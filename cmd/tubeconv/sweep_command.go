package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tubeconv/internal/logging"
	"tubeconv/internal/retention"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired artifacts from the working directory once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: "console",
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			sweeper := retention.New(
				cfg.Paths.DownloadDir,
				time.Duration(cfg.Retention.MaxAgeHours)*time.Hour,
				time.Duration(cfg.Retention.SweepIntervalHours)*time.Hour,
				logger,
			)
			deleted := sweeper.SweepOnce()
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired artifact(s) from %s\n",
				deleted, cfg.Paths.DownloadDir)
			return nil
		},
	}
}
