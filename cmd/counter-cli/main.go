package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/govm-net/counter/store"
	_ "github.com/govm-net/counter/store/bolt"
	_ "github.com/govm-net/counter/store/db"
	_ "github.com/govm-net/counter/store/memory"
	"github.com/govm-net/counter/vm"
	"github.com/spf13/cobra"
)

var (
	storeType string
	dbPath    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "counter-cli",
	Short: "Counter contract command line tool",
	Long: `Counter contract command line tool for instantiating, executing and querying
the owner-gated counter contract against a local store.
Complete documentation is available at https://github.com/govm-net/counter`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storeType, "store", "s", string(store.DBStoreType), "Store backend (memory, db, bolt)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database file used by the db and bolt stores")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(instantiateCmd)
	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(schemaCmd)
}

// newEngine opens the engine selected by the persistent flags
func newEngine() (*vm.Engine, error) {
	params := map[string]any{}
	if dbPath != "" {
		params["db_path"] = dbPath
	}

	engine, err := vm.NewEngine(&vm.Config{
		StoreType:   storeType,
		StoreParams: params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create VM engine: %w", err)
	}
	return engine, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
