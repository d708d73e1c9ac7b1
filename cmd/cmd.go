// Package cmd defines the command-line interface for vitaline.
package cmd

import (
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("duration", "d", contract.DefaultDurationSec, "Timeline duration in seconds")
	rootCmd.PersistentFlags().Int64P("sample-rate", "r", contract.DefaultSampleRateMs, "Grid spacing in milliseconds")
	rootCmd.PersistentFlags().StringP("signals", "s", "", "Comma-separated signal keys (e.g. 'HR,SpO2,RR')")
	rootCmd.PersistentFlags().String("clock-start", contract.DefaultClockStart, "Wall-clock anchor for the Clock column (H:MM)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("columns", "", "Comma-separated export column list")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
