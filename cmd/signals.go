package cmd

import (
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/outwriter"
	"github.com/spf13/cobra"
)

// signalsCmd lists the signal catalog.
var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List the signal catalog with units, bounds, and normal bands.",
	Long: `List every signal the engine knows about.

Shows each signal's unit, hard bounds, catalog default, editing step, and
normal band. These are the names accepted by --signals, scenario files, and
CSV column headers.

Examples:
  # Table view
  vitaline signals

  # Machine-readable catalog
  vitaline signals --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.PrintCatalog(cfg); err != nil {
			contract.LogFatal("Cannot print signal catalog", err)
		}
	},
}
