package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the configured schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys <schema>",
	Short: "Show how a schema partitions its attribute keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := registry.Get(args[0])
		if err != nil {
			return err
		}

		tag, ok := schema.RecordType()
		if !ok {
			tag = "-"
		}

		fmt.Printf("Schema:   %s\n", schema.Name())
		fmt.Printf("Record:   %t\n", schema.UsesRecord())
		fmt.Printf("Type:     %s\n", tag)
		fmt.Printf("Declared: %s\n", joinKeys(schema.DeclaredKeys()))
		fmt.Printf("Table:    %s\n", joinKeys(schema.TableKeys()))
		fmt.Printf("Fields:   %s\n", joinKeys(schema.RecordKeys()))
		fmt.Printf("Computed: %s\n", joinKeys(schema.ComputedKeys()))
		return nil
	},
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "(none)"
	}
	return strings.Join(keys, ", ")
}
