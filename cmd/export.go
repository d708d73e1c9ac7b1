package cmd

import (
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/outwriter"
	"github.com/spf13/cobra"
)

// exportCmd builds a timeline and writes it in the configured format.
var exportCmd = &cobra.Command{
	Use:   "export [scenario.yaml]",
	Short: "Build a timeline and export it as a table, CSV, JSON, or Parquet.",
	Long: `Build a dense vital-sign timeline and export it.

Without a scenario file, every selected signal holds its catalog default for
the whole duration. A scenario file adds control points on top of that
baseline, and the dense curves are regenerated by linear interpolation.

Examples:
  # Summary table for the default 30-minute scenario
  vitaline export

  # One hour of HR and SpO2 as CSV
  vitaline export --duration 3600 --signals HR,SpO2 --output csv --output-file vitals.csv

  # Replay a scenario file and keep only selected columns
  vitaline export case01.yaml --output csv --columns Time,HR,SpO2

  # Long-format Parquet for analysis pipelines
  vitaline export case01.yaml --output parquet --output-file vitals.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		t, err := buildTimeline()
		if err != nil {
			contract.LogFatal("Cannot build timeline", err)
		}
		if err := outwriter.PrintTimeline(t, cfg); err != nil {
			contract.LogFatal("Cannot export timeline", err)
		}
	},
}
