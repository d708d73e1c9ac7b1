// main is the entry point for the vitaline CLI.
package main

import (
	"github.com/openvitals/vitaline/cmd"
	"github.com/openvitals/vitaline/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
