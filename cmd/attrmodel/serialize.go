package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tendant/content-attrs/pkg/attrmodel"
)

var (
	attrsFile string
	unguard   bool
)

var serializeCmd = &cobra.Command{
	Use:   "serialize <schema>",
	Short: "Build a model from a JSON attribute file and print its serialized form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := registry.Get(args[0])
		if err != nil {
			return err
		}

		attrs := attrmodel.NewAttributes()
		if attrsFile != "" {
			data, err := os.ReadFile(attrsFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", attrsFile, err)
			}
			if err := json.Unmarshal(data, attrs); err != nil {
				return fmt.Errorf("parsing %s: %w", attrsFile, err)
			}
		}

		attrs, err = schema.DecodeRecord(attrs)
		if err != nil {
			return err
		}

		m, err := attrmodel.New(schema, nil)
		if err != nil {
			return err
		}
		if unguard {
			m.Unguard()
		}
		if err := m.Refresh(attrs); err != nil {
			return err
		}
		m.Reguard()

		return printJSON(m)
	},
}

func init() {
	serializeCmd.Flags().StringVar(&attrsFile, "attrs", "", "JSON file holding the attributes to fill")
	serializeCmd.Flags().BoolVar(&unguard, "unguard", false, "fill guarded attributes too")
}
