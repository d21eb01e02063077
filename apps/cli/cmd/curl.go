package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/restfile/packages/core/config"
	"github.com/abdul-hamid-achik/restfile/packages/core/env"
	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
	"github.com/abdul-hamid-achik/restfile/packages/core/template"
	"github.com/abdul-hamid-achik/restfile/packages/render/curl"
)

var (
	curlEnvFlag     string
	curlEnvFileFlag string
	curlVarFlags    []string
	curlConfigFlag  string
)

var curlCmd = &cobra.Command{
	Use:   "curl <file> [request-name]",
	Short: "Render requests as curl command lines",
	Long: `Render the requests of a REST file as curl command lines. With a
request name only that request is rendered.

Variable bindings merge in order: config file variables, the selected
environment's overrides, an --env-file, --var flags, and finally the
variables defined in the document itself.

Examples:
  restfile curl api.http
  restfile curl api.http CreateUser
  restfile curl --env prod --var TOKEN=abc api.http`,
	Args: cobra.RangeArgs(1, 2),
	RunE: curlCommand,
}

func init() {
	curlCmd.Flags().StringVarP(&curlEnvFlag, "env", "e", "", "Environment name from the config file")
	curlCmd.Flags().StringVar(&curlEnvFileFlag, "env-file", "", "Path to a .env file with extra variables")
	curlCmd.Flags().StringArrayVar(&curlVarFlags, "var", nil, "Extra variable as key=value (repeatable)")
	curlCmd.Flags().StringVarP(&curlConfigFlag, "config", "c", "", "Path to the config file")
}

func curlCommand(cmd *cobra.Command, args []string) error {
	f, err := restfile.ParseFile(args[0])
	if err != nil {
		return err
	}

	requests := f.Requests
	if len(args) == 2 {
		req := findRequest(f, args[1])
		if req == nil {
			return fmt.Errorf("no request named %q in %s", args[1], args[0])
		}
		requests = []*restfile.RestRequest{req}
	}

	vars, err := buildVariables(f)
	if err != nil {
		return err
	}

	renderer := curl.New(vars)
	for _, req := range requests {
		line, err := renderer.Request(req)
		if err != nil {
			return err
		}
		if len(requests) > 1 {
			name := req.Name
			if name == "" {
				name = req.Method.Raw + " " + req.URL.Raw
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", line)
	}
	return nil
}

func findRequest(f *restfile.RestFormat, name string) *restfile.RestRequest {
	for _, req := range f.Requests {
		if req.Name == name {
			return req
		}
	}
	return nil
}

// buildVariables layers the external bindings under the document's own
// variable table. The document always wins: its variables are part of the
// file's meaning, the rest is ambient context.
func buildVariables(f *restfile.RestFormat) (*template.Map, error) {
	cfg, err := config.Load(curlConfigFlag)
	if err != nil {
		return nil, err
	}

	configVars, err := cfg.EnvironmentVariables(curlEnvFlag)
	if err != nil {
		return nil, err
	}

	var fileVars *template.Map
	if curlEnvFileFlag != "" {
		fileVars, err = env.LoadDotEnv(curlEnvFileFlag)
		if err != nil {
			return nil, err
		}
	}

	flagVars := template.NewMap()
	for _, kv := range curlVarFlags {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --var %q, want key=value", kv)
		}
		flagVars.Set(key, template.Text(value))
	}

	return env.Merge(configVars, fileVars, flagVars, f.Variables), nil
}
