package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/govm-net/counter/core"
	"github.com/govm-net/counter/vm"
	"github.com/spf13/cobra"
)

var sender string

var instantiateCmd = &cobra.Command{
	Use:   "instantiate <init-json>",
	Short: "Create the counter state",
	Long: `Create the counter state owned by the sender.
Example: counter-cli instantiate '{"count": 17}' --sender 0xabcdef1234567890abcdef1234567890abcdef12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd.OutOrStdout(), sender, func(engine *vm.Engine, addr core.Address) (*vm.Result, error) {
			return engine.Instantiate(cmd.Context(), addr, []byte(args[0]))
		})
	},
}

var executeCmd = &cobra.Command{
	Use:   "execute <execute-json>",
	Short: "Execute an increment or reset message",
	Long: `Execute an increment or reset message on behalf of the sender.
Example: counter-cli execute '{"increment": {}}' --sender 0x1111111111111111111111111111111111111111
         counter-cli execute '{"reset": {"count": 5}}' --sender 0xabcdef1234567890abcdef1234567890abcdef12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd.OutOrStdout(), sender, func(engine *vm.Engine, addr core.Address) (*vm.Result, error) {
			return engine.Execute(cmd.Context(), addr, []byte(args[0]))
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{instantiateCmd, executeCmd} {
		cmd.Flags().StringVar(&sender, "sender", "", "Sender address (required)")
		cmd.MarkFlagRequired("sender")
	}
}

func runMutation(out io.Writer, senderHex string, call func(*vm.Engine, core.Address) (*vm.Result, error)) error {
	if senderHex == "" {
		return fmt.Errorf("sender address is required")
	}
	addr, err := core.ParseAddress(senderHex)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := call(engine, addr)
	if err != nil {
		return fmt.Errorf("failed to execute contract: %w", err)
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintf(out, "Execution result:\n%s\n", string(resultJSON))
	return nil
}
