package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vitaline.",
	Long: `Print the release version together with build metadata.

The output includes the release version, the git commit the binary was built
from, the build timestamp, and the Go runtime version. Include it when
reporting a bug so the exact build can be reproduced.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("vitaline CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
