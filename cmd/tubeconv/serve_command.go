package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"tubeconv/internal/daemon"
	"tubeconv/internal/fileutil"
	"tubeconv/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion service in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if err := fileutil.EnsureDir(cfg.Paths.LogDir); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}
			logger, err := logging.New(logging.Options{
				Level:    cfg.Logging.Level,
				Format:   cfg.Logging.Format,
				FilePath: filepath.Join(cfg.Paths.LogDir, "tubeconv.log"),
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			d, err := daemon.New(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tubeconv listening on %s\n", d.Addr())

			<-runCtx.Done()
			d.Stop()
			return nil
		},
	}
}
