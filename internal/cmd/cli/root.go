package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/psukit/diaglog/internal/config"
	"github.com/psukit/diaglog/internal/runtime"
	pebblestore "github.com/psukit/diaglog/internal/storage/pebble"
	logpkg "github.com/psukit/diaglog/pkg/log"
)

// NewRoot constructs the root Cobra command for the diaglog CLI.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "diaglog",
		Short: "Bounded, persistent diagnostic log buffer",
		Long:  "diaglog accumulates structured diagnostic entries, enforces count/age/byte retention, and mirrors them to a quota-bounded durable store.",
	}
	root.PersistentFlags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	root.PersistentFlags().String("config", os.Getenv("DIAGLOG_CONFIG"), "Path to JSON config file")
	root.PersistentFlags().String("fsync", "always", "Fsync mode: always|interval|never")
	root.PersistentFlags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms")

	root.AddCommand(newIngestCommand())
	root.AddCommand(newDumpCommand())
	root.AddCommand(newExportCommand())
	root.AddCommand(newClearCommand())
	root.AddCommand(newStatusCommand())
	return root
}

// openRuntime resolves config and flags and opens the process runtime.
func openRuntime(cmd *cobra.Command) (*runtime.Runtime, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	fsyncMode, _ := cmd.Flags().GetString("fsync")
	fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")

	cfg, err := cfgpkg.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cfgpkg.FromEnv(&cfg)

	if dataDir == "" {
		dataDir = os.Getenv("DIAGLOG_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = cfgpkg.DefaultDataDir()
	}

	mode, err := pebblestore.ParseFsyncMode(fsyncMode)
	if err != nil {
		return nil, err
	}

	level := logpkg.InfoLevel
	if parsed, err := logpkg.ParseLevel(os.Getenv("DIAGLOG_LOG_LEVEL")); err == nil {
		level = parsed
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	// Pebble logs through the stdlib logger.
	logpkg.RedirectStdLog(logger)

	return runtime.Open(runtime.Options{
		DataDir:       filepath.Join(dataDir, "store"),
		Fsync:         mode,
		FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
		Config:        cfg,
		Logger:        logger,
	})
}
