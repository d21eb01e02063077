// Package cmd implements the restfile CLI commands using Cobra.
//
// Available commands:
//   - list: Display the requests defined in REST files
//   - validate: Check file syntax without doing anything else
//   - curl: Render a request as a curl command line
//   - init: Create a new project with a config and example file
//   - version: Show restfile version information
package cmd
