package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new restfile project",
	Long: `Initialize a new restfile project in the current directory.

This creates:
  - restfile.yaml  - Configuration file with environments
  - example.http   - Example request file

Examples:
  restfile init
  restfile init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "restfile.yaml")
	exampleFile := filepath.Join(cwd, "example.http")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"defaultFlavor":      "jetbrains",
		"defaultEnvironment": "dev",
		"variables": map[string]string{
			"API_VERSION": "v1",
		},
		"environments": map[string]map[string]string{
			"dev": {
				"HOST": "http://localhost:3000",
			},
			"staging": {
				"HOST": "https://staging.api.example.com",
			},
			"prod": {
				"HOST": "https://api.example.com",
			},
		},
	}

	configYAML, _ := yaml.Marshal(configContent)
	if err := os.WriteFile(configFile, configYAML, 0o644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `@contentType = application/json

### GetHealth
# @name healthCheck
GET {{HOST}}/{{API_VERSION}}/health HTTP/1.1

### CreateResource
# @no-log
POST {{HOST}}/{{API_VERSION}}/resources HTTP/1.1
Content-Type: {{contentType}}

{
  "name": "Test Resource",
  "description": "Created by restfile"
}

### UploadPayload
POST {{HOST}}/{{API_VERSION}}/upload HTTP/1.1
Content-Type: {{contentType}}

< ./payload.json
`

	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0o644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nTry it:\n  restfile list example.http\n  restfile curl --env dev example.http\n")
	return nil
}
