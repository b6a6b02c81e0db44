// Package cmd provides the CLI commands for routectl.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Offline tooling for the PSP routing engine",
	Long: `routectl exercises the PSP routing engine without a server.

It generates the seeded test dataset, routes it through the no-retry
baseline and smart retry, and writes both the transactions and the
performance report as JSON files.

Examples:
  routectl generate
  routectl generate --count 500 --strategy balanced
  routectl generate --out ./artifacts`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(generateCmd)
}
