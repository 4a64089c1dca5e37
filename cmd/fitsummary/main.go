package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lucasjlepore/fit-summary/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fitsummary",
	Short: "Summarize FIT activity files",
	Long: `fitsummary decodes a FIT activity file and derives an ordered workout
summary: durations, distance, heart rate, power, pace or speed, zones,
training effect and strength sets, each tagged with its unit.

Configuration is read from ~/.config/fitsummary/config.toml when present,
or from the file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config.toml (default ~/.config/fitsummary/config.toml)")

	summarizeCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full report as JSON")

	exportCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default <export_dir>/<file name>)")
	exportCmd.Flags().StringVarP(&format, "format", "f", "", "Summary table format: json, csv or parquet (default from config)")
	exportCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Allow writing into a non-empty output directory")
	exportCmd.Flags().BoolVar(&noSource, "no-source", false, "Do not copy the FIT file into the bundle")

	rootCmd.AddCommand(summarizeCmd, exportCmd, recordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
