package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fitsummary "github.com/lucasjlepore/fit-summary"
	"github.com/lucasjlepore/fit-summary/decoder"
	"github.com/lucasjlepore/fit-summary/export"
)

var (
	jsonOut   bool
	outDir    string
	format    string
	overwrite bool
	noSource  bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.fit>",
	Short: "Print the workout summary of a FIT file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.fit>",
	Short: "Write a summary bundle for a FIT file",
	Long: `Writes manifest.json, summary.json and records.jsonl into the output
directory, plus summary and track point tables when the format is csv or
parquet, and a copy of the source file unless copy_source is off.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var recordsCmd = &cobra.Command{
	Use:   "records <file.fit>",
	Short: "Dump the decoded typed records as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecords,
}

func summarizerConfig() fitsummary.Config {
	return fitsummary.Config{
		UniformSingletons: cfg.UniformSingletons,
		Logger:            logger,
	}
}

func runSummarize(cmd *cobra.Command, args []string) error {
	report, err := fitsummary.SummarizeFile(args[0], summarizerConfig())
	if err != nil {
		return fmt.Errorf("summarize %s: %w", args[0], err)
	}
	logger.Debug("summarized", zap.String("file", args[0]), zap.Duration("took", report.Took))

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err = fmt.Fprintln(out, fitsummary.BuildNotes(report))
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fit file: %w", err)
	}
	report, err := fitsummary.SummarizeBytes(data, summarizerConfig())
	if err != nil {
		return fmt.Errorf("summarize %s: %w", path, err)
	}
	report.SourceFile = path

	dir := outDir
	if strings.TrimSpace(dir) == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dir = filepath.Join(cfg.ExportDir, base)
	}
	opts := export.Options{
		Format:    cfg.OutputFormat,
		Overwrite: cfg.Overwrite,
		Logger:    logger,
	}
	if cmd.Flags().Changed("format") {
		opts.Format = format
	}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite = overwrite
	}
	if cfg.CopySource && !noSource {
		opts.Source = data
	}

	res, err := export.WriteBundle(report, report.Decoded, dir, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Export complete\n")
	fmt.Fprintf(out, "Output dir: %s\n", res.OutputDir)
	fmt.Fprintf(out, "Export id:  %s\n", res.Manifest.ExportID)
	for _, f := range res.Files {
		fmt.Fprintf(out, "  %s\n", filepath.Base(f))
	}
	fmt.Fprintf(out, "Records:    %d (%d unhandled)\n", report.RecordCount, report.Unhandled)
	fmt.Fprintf(out, "CRC valid:  header=%t file=%t\n", res.Manifest.HeaderCRC.Valid, res.Manifest.FileCRC.Valid)
	return nil
}

func runRecords(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read fit file: %w", err)
	}
	decoded, err := decoder.Decode(data, decoder.WithLogger(logger))
	if err != nil {
		return err
	}
	return export.WriteRecordsJSONL(cmd.OutOrStdout(), decoded.Records)
}
