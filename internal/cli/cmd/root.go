// Package cmd provides Cobra CLI commands for hoard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/hoard/internal/cli"
)

var (
	app        *cli.App
	configFile string

	rootCmd = &cobra.Command{
		Use:   "hoard",
		Short: "A bounded write-back entity cache over a durable store",
		Long: `Hoard - a bounded in-memory LRU cache in front of a durable backing store.

Entities evicted from the cache are written back to the store before being
dropped, so removed or evicted data is never lost. The CLI drives a cache
engine over a SQLite backing store for local use and inspection.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version", "config", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}
