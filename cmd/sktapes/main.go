// SPDX-License-Identifier: EPL-2.0

// Command sktapes prepares sample sets for the looper: it converts audio to
// the device format, builds tape layouts from folders and saves or restores
// project backups.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/sktapes/ingest"
	"github.com/ik5/sktapes/internal/config"
	"github.com/ik5/sktapes/internal/logger"
	"github.com/ik5/sktapes/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sktapes: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every sub-command needs once the root has loaded it.
type app struct {
	configFile string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "sktapes",
		Short: "Prepare sample tapes for the looper",
		Long: `sktapes converts audio to 48 kHz stereo 32-bit float WAV, arranges samples on
six tapes of six slots and writes the SK/ folder layout the device reads.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "YAML config file (overrides SKTAPES_CONFIG)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.AddCommand(
		newConvertCmd(a),
		newBuildCmd(a),
		newRestoreCmd(a),
		newInfoCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.configFile != "" {
		if err := os.Setenv("SKTAPES_CONFIG", a.configFile); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logger.New(logger.Config{
		Level:      logger.Level(cfg.Log.Level),
		Console:    cmd.ErrOrStderr(),
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.cfg = cfg
	a.log = log.With(zap.String("command", cmd.Name()))
	return nil
}

func (a *app) ingester() *ingest.Engine {
	return ingest.New(
		ingest.WithLogger(a.log.Named("ingest")),
		ingest.WithWorkers(a.cfg.Ingest.Workers),
		ingest.WithBufferSize(a.cfg.Ingest.BufferSize),
	)
}

func (a *app) engine() *project.Engine {
	return project.New(a.ingester(), project.WithLogger(a.log.Named("project")))
}

func (a *app) logRepairs(repairs []*project.IntegrityError) {
	for _, r := range repairs {
		a.log.Warn("backup repaired", zap.String("kind", r.Kind), zap.String("file", r.FileID), zap.String("version", r.VersionID))
	}
}
