package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	curlimport "github.com/abdul-hamid-achik/restfile/packages/import/curl"
)

var (
	importOutputFlag string
	importNoNames    bool
)

var importCmd = &cobra.Command{
	Use:   "import <commands-file>",
	Short: "Convert curl commands into a REST file",
	Long: `Convert a file of curl commands into a .http document. Each command
becomes one request; shell line continuations are supported.

Examples:
  restfile import commands.sh
  restfile import commands.sh -o api.http`,
	Args: cobra.ExactArgs(1),
	RunE: importCommand,
}

func init() {
	importCmd.Flags().StringVarP(&importOutputFlag, "output", "o", "", "Write the document to a file instead of stdout")
	importCmd.Flags().BoolVar(&importNoNames, "no-names", false, "Skip @name annotations")
	rootCmd.AddCommand(importCmd)
}

func importCommand(cmd *cobra.Command, args []string) error {
	converter := curlimport.NewConverter(curlimport.WithNames(!importNoNames))

	document, err := converter.ConvertFile(args[0])
	if err != nil {
		return err
	}

	if importOutputFlag == "" {
		fmt.Fprint(cmd.OutOrStdout(), document)
		return nil
	}

	if err := os.WriteFile(importOutputFlag, []byte(document), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", importOutputFlag, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", importOutputFlag)
	return nil
}
