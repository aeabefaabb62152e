package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orrery/internal/version"
)

const modulePath = "github.com/mesh-intelligence/orrery"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the orrery version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "orrery v%s\nmodule: %s\n", version.Short(), modulePath)
	},
}
