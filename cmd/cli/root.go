// Package cmd implements the moneyhive CLI, grounded on the teacher's
// cmd/cli cobra root/serve/migrate/db command set.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moneyhive",
	Short: "moneyhive - personal savings moneybox allocation engine",
	Long:  `moneyhive runs the moneybox allocation engine: savings moneyboxes, automated distribution, and the transaction/action history behind them.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
