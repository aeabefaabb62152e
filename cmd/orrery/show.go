// Show command displays one entity with attributes and provenance.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orrery/pkg/cosmos"
)

var showCmd = &cobra.Command{
	Use:   "show <kind> <name>",
	Short: "Display an entity with full details",
	Long: `Show resolves an entity by kind and name in the target universe and
prints its quantities, strings, links, and back-reference collections,
with the provenance recorded for each value.

Example:
  orrery show star Sun
  orrery show planet Earth --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindName, name := args[0], args[1]

		kind, ok := registrar.KindByName(kindName)
		if !ok {
			return fmt.Errorf("unknown kind %q", kindName)
		}

		u, err := targetUniverse()
		if err != nil {
			fmt.Fprintln(os.Stderr, "resolve universe:", err)
			os.Exit(exitSysError)
		}
		registry, err := u.Collection(kind.Collection())
		if err != nil {
			return fmt.Errorf("load collection: %w", err)
		}
		obj, ok := registry.Lookup(name)
		if !ok {
			return fmt.Errorf("%s %q not found in universe %q", kindName, name, u.Name())
		}
		entity := obj.(*cosmos.Entity)

		if flagJSON {
			out, err := json.MarshalIndent(entityDoc(entity), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		printEntity(cmd, entity)
		return nil
	},
}

// entityDoc flattens an entity into a JSON-friendly map.
func entityDoc(e *cosmos.Entity) map[string]any {
	doc := map[string]any{
		"name":     e.Name(),
		"kind":     e.Kind().Name(),
		"universe": e.Universe().Name(),
	}
	if e.Reference() != "" {
		doc["reference"] = e.Reference()
	}
	if e.ReferenceURL() != "" {
		doc["reference_url"] = e.ReferenceURL()
	}
	quantities := map[string]any{}
	for attr, q := range e.Quantities() {
		quantities[attr] = map[string]any{
			"value": q.Value(),
			"unit":  q.Unit().String(),
		}
	}
	if len(quantities) > 0 {
		doc["quantities"] = quantities
	}
	texts := map[string]string{}
	for attr, s := range e.Texts() {
		texts[attr] = s.Text()
	}
	if len(texts) > 0 {
		doc["strings"] = texts
	}
	links := map[string]string{}
	for attr, target := range e.Links() {
		links[attr] = target.Name()
	}
	if len(links) > 0 {
		doc["links"] = links
	}
	collections := map[string][]string{}
	for attr, reg := range e.Collections() {
		collections[attr] = reg.Names()
	}
	if len(collections) > 0 {
		doc["collections"] = collections
	}
	return doc
}

// printEntity renders the text output.
func printEntity(cmd *cobra.Command, e *cosmos.Entity) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) in universe %q\n", e.Name(), e.Kind().Name(), e.Universe().Name())
	if e.Reference() != "" {
		fmt.Fprintf(out, "  reference: %s\n", e.Reference())
	}
	if e.ReferenceURL() != "" {
		fmt.Fprintf(out, "  reference_url: %s\n", e.ReferenceURL())
	}

	quantities := e.Quantities()
	for _, attr := range sortedKeys(quantities) {
		fmt.Fprintf(out, "  %s: %s\n", attr, quantities[attr])
	}
	texts := e.Texts()
	for _, attr := range sortedKeys(texts) {
		fmt.Fprintf(out, "  %s: %s\n", attr, texts[attr].Text())
	}
	links := e.Links()
	for _, attr := range sortedKeys(links) {
		fmt.Fprintf(out, "  %s: %s\n", attr, links[attr].Name())
	}
	collections := e.Collections()
	for _, attr := range sortedKeys(collections) {
		reg := collections[attr]
		fmt.Fprintf(out, "  %s (%d):\n", attr, reg.Len())
		for _, name := range reg.Names() {
			fmt.Fprintf(out, "    %s\n", name)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
