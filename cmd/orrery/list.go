// List command enumerates the entities of one kind in a universe,
// triggering the lazy dataset load for that collection.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/orrery/pkg/cosmos"
)

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List entities of a kind",
	Long: `List prints the names of all entities in one collection of the target
universe. Collections are addressed by their plural attribute name.

Example:
  orrery list planets
  orrery list stars
  orrery --universe Mirror list planets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := args[0]

		u, err := targetUniverse()
		if err != nil {
			fmt.Fprintln(os.Stderr, "resolve universe:", err)
			os.Exit(exitSysError)
		}

		registry, err := u.Collection(collection)
		if err != nil {
			if errors.Is(err, cosmos.ErrNotFound) {
				return fmt.Errorf("unknown collection %q (valid: %s)", collection, knownCollections())
			}
			return fmt.Errorf("load collection: %w", err)
		}
		logger.Debug("Collection loaded",
			zap.String("collection", collection),
			zap.Int("entities", registry.Len()))

		names := registry.Names()
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

// knownCollections names the declared collections for error messages.
func knownCollections() string {
	kinds := registrar.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Collection())
	}
	return strings.Join(names, ", ")
}
