package cmd

import (
	"os"

	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/csvcodec"
	"github.com/openvitals/vitaline/internal/outwriter"
	"github.com/spf13/cobra"
)

// importCmd parses a recorded CSV and reports what it found.
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a recorded CSV onto a clean sample grid.",
	Long: `Parse a recorded vital-sign CSV and snap it onto a clean sample grid.

The time column is detected by name ('Time' or anything containing
'milliseconds'), signal columns are matched against the catalog, the sample
rate is inferred from row spacing, and values are clamped to each signal's
bounds. Rows with unparseable timestamps are dropped.

Examples:
  # Inspect a recording as a summary table
  vitaline import recording.csv

  # Normalize a recording back out as CSV
  vitaline import recording.csv --output csv --output-file clean.csv

  # Inspect the imported state as JSON
  vitaline import recording.csv --output json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is a CSV path, not a scenario file
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		if err != nil {
			contract.LogFatal("Cannot open CSV file", err)
		}
		defer func() { _ = file.Close() }()

		t, err := csvcodec.Import(file)
		if err != nil {
			contract.LogFatal("Cannot import CSV file", err)
		}
		if err := outwriter.PrintTimeline(t, cfg); err != nil {
			contract.LogFatal("Cannot write imported timeline", err)
		}
	},
}
