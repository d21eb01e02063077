package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
	"github.com/abdul-hamid-achik/restfile/packages/output"
)

var (
	listJSONFlag    bool
	listVerboseFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List the requests in REST files",
	Long: `List the requests defined in .http or .rest files.

Examples:
  restfile list api.http
  restfile list ./requests/
  restfile list --json api.http`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func init() {
	listCmd.Flags().BoolVar(&listJSONFlag, "json", false, "Emit the parsed model as JSON")
	listCmd.Flags().BoolVarP(&listVerboseFlag, "verbose", "v", false, "Show variables, headers and bodies")
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .http or .rest files found")
	}

	if listJSONFlag {
		formatter := output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout()))
		for _, file := range files {
			f, err := restfile.ParseFile(file)
			if err != nil {
				return err
			}
			formatter.FormatFile(file, f)
		}
		return formatter.Flush()
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
		output.WithVerbose(listVerboseFlag),
	)

	for _, file := range files {
		f, err := restfile.ParseFile(file)
		if err != nil {
			formatter.FormatError(file, err)
			continue
		}
		formatter.FormatFile(file, f)
	}
	return nil
}
