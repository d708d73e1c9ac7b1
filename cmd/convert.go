package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/csvcodec"
	"github.com/openvitals/vitaline/internal/outwriter"
	"github.com/openvitals/vitaline/schema"
	"github.com/spf13/cobra"
)

// convertCmd turns a recorded CSV into another file format in one step.
var convertCmd = &cobra.Command{
	Use:   "convert <file.csv> <output-file>",
	Short: "Convert a recorded CSV into CSV, JSON, or Parquet.",
	Long: `Convert a recorded vital-sign CSV into another format in one step.

The output format is inferred from the output file extension (.csv, .json,
or .parquet). Conversion runs the same import pipeline as 'vitaline import',
so the result is always on a clean sample grid with clamped values.

Examples:
  # Normalize a messy recording
  vitaline convert recording.csv clean.csv

  # Produce a long-format Parquet file for analysis
  vitaline convert recording.csv vitals.parquet

  # Produce a JSON document including per-signal statistics
  vitaline convert recording.csv vitals.json`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		mode, err := modeFromExtension(args[1])
		if err != nil {
			contract.LogFatal("Cannot determine output format", err)
		}

		file, err := os.Open(args[0])
		if err != nil {
			contract.LogFatal("Cannot open CSV file", err)
		}
		defer func() { _ = file.Close() }()

		t, err := csvcodec.Import(file)
		if err != nil {
			contract.LogFatal("Cannot import CSV file", err)
		}

		cfg.Output = mode
		cfg.OutputFile = args[1]
		if err := outwriter.PrintTimeline(t, cfg); err != nil {
			contract.LogFatal("Cannot write converted timeline", err)
		}
	},
}

// modeFromExtension maps an output file extension to an output mode.
func modeFromExtension(path string) (schema.OutputMode, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return schema.CSVOut, nil
	case ".json":
		return schema.JSONOut, nil
	case ".parquet":
		return schema.ParquetOut, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (use .csv, .json, or .parquet)", filepath.Ext(path))
	}
}
