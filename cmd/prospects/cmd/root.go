package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"prospects/lib/serviceutil"
	libtelemetry "prospects/lib/telemetry"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath string
	noPersist  bool
	dumpHttp   string

	config  Config
	tracing libtelemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:           "prospects",
	Short:         "prospects tracks an NHL organization's prospects and renders reports on them.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		initSlog(config.SlogLevel())

		tracing, err = libtelemetry.Setup(cmd.Context(), "prospects", config.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := tracing.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush traces", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "prospects.json5", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "do not write the scraped snapshot to the snapshot database")
	rootCmd.PersistentFlags().StringVar(&dumpHttp, "dump-http", "", "write every uncached request and response to this directory")
}

func initSlog(level slog.Level) {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func Execute() {
	if err := rootCmd.ExecuteContext(signalContext()); err != nil {
		serviceutil.Fatal("prospects failed", err)
	}
}
