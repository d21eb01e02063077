package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var noColorFlag bool

var rootCmd = &cobra.Command{
	Use:   "restfile",
	Short: "Parse and inspect IDE-style REST files",
	Long: `restfile parses .http and .rest files, the plain text request
collections used by JetBrains IDEs and the VSCode REST client, into a
structured model: named requests, headers, bodies and a variable table.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(curlCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
