package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var universesCmd = &cobra.Command{
	Use:   "universes",
	Short: "List known universes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := registrar.UniverseNames()
		if flagJSON {
			out, err := json.MarshalIndent(names, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
