// Command ynabviz runs the Food budget visualization pipeline outside Lambda:
// one-shot, as an HTTP trigger, or as an AMQP worker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ynabviz/internal/cli"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "ynabviz",
	Short:         "YNAB Food budget visualizations",
	Long:          "ynabviz reads the Food category group from YNAB and publishes pie charts to an object store, Notion or Google Sheets.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if envFile != "" {
			cli.LoadEnvFile(envFile)
		} else {
			cli.LoadEnvFile()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default ./.env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
