// Command catalogctl inspects the bundled restaurant catalog from a terminal.
//
// Usage:
//
//	catalogctl validate
//	catalogctl search ch --suggest
//	catalogctl rank chickfila --by ratio --top 5
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/protein-finder/data"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

// catalogLoader is swapped in tests.
var catalogLoader = func() (services.CatalogStore, error) {
	return data.Catalog()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect the protein finder restaurant catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return utils.ConfigureLogger(logLevel, "text")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newValidateCmd(), newSearchCmd(), newRankCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
