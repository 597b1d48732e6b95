package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tendant/content-attrs/pkg/attrmodel"
	"github.com/tendant/content-attrs/pkg/attrmodel/config"
)

var (
	schemaFile string

	registry *attrmodel.Registry
)

var rootCmd = &cobra.Command{
	Use:           "attrmodel <command>",
	Short:         "Inspect attribute model schemas and serialize attribute sets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		opts := []config.Option{config.WithEnv()}
		if schemaFile != "" {
			opts = []config.Option{config.WithFile(schemaFile), config.WithEnv()}
		}
		cfg, err := config.Load(opts...)
		if err != nil {
			return err
		}

		registry, err = cfg.BuildRegistry()
		if err != nil {
			return fmt.Errorf("building schemas: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema-file", "", "schema file (overrides SCHEMA_FILE)")

	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(serializeCmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
