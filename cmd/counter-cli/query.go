package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [query-json]",
	Short: "Query the counter",
	Long: `Query the counter. Without an argument the current count is returned.
Example: counter-cli query '{"get_count": {}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := []byte(`{"get_count": {}}`)
		if len(args) == 1 {
			payload = []byte(args[0])
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		result, err := engine.Query(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("failed to query contract: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(result))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the contract name and version stored at instantiation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		info, err := engine.ContractVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read contract version: %w", err)
		}
		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
