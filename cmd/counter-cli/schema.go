package main

import (
	"fmt"

	"github.com/govm-net/counter/schema"
	"github.com/spf13/cobra"
)

var outDir string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export JSON schemas of the contract messages",
	Long: `Export JSON schemas of the contract messages, state and responses.
Existing *.json files in the output directory are removed first.
Example: counter-cli schema -o ./schema`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := schema.Export(outDir, schema.Entries)
		if err != nil {
			return fmt.Errorf("failed to export schemas: %w", err)
		}
		for _, path := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&outDir, "out", "o", "schema", "Output directory")
}
