package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
	"github.com/abdul-hamid-achik/restfile/packages/core/template"
	"github.com/abdul-hamid-achik/restfile/packages/output"
)

// watchDebounceDelay coalesces rapid editor write events into one re-check.
const watchDebounceDelay = 300 * time.Millisecond

var watchFlag bool

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>",
	Short: "Validate REST files for syntax errors",
	Long: `Validate .http or .rest files for syntax errors.

Examples:
  restfile validate api.http
  restfile validate ./requests/
  restfile validate --watch ./requests/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func init() {
	validateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-validate")
}

func validateCommand(cmd *cobra.Command, args []string) error {
	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
	)

	validateAll := func() (bool, error) {
		files, err := collectFiles(args)
		if err != nil {
			return false, err
		}
		if len(files) == 0 {
			return false, fmt.Errorf("no .http or .rest files found")
		}

		ok := true
		for _, file := range files {
			f, err := restfile.ParseFile(file)
			if err != nil {
				formatter.FormatError(file, err)
				ok = false
				continue
			}
			formatter.FormatValid(file)
			for _, warning := range lintRequests(f) {
				formatter.FormatWarning(file, warning)
			}
		}
		return ok, nil
	}

	ok, err := validateAll()
	if err != nil {
		return err
	}

	if !watchFlag {
		if !ok {
			return fmt.Errorf("validation failed")
		}
		return nil
	}

	return watchAndRevalidate(cmd, args, func() {
		_, _ = validateAll()
	})
}

// lintRequests flags request bodies that declare application/json but do not
// hold well-formed JSON. Bodies with placeholders are skipped: they only
// become JSON after rendering.
func lintRequests(f *restfile.RestFormat) []string {
	var warnings []string
	for i, req := range f.Requests {
		if req.Body == nil || req.Body.Kind != restfile.BodyText {
			continue
		}
		if !strings.Contains(strings.ToLower(contentType(req)), "application/json") {
			continue
		}
		if hasPlaceholders(req.Body.Text) {
			continue
		}
		if !gjson.Valid(req.Body.Text.Raw) {
			name := req.Name
			if name == "" {
				name = fmt.Sprintf("request %d", i+1)
			}
			warnings = append(warnings, fmt.Sprintf("%s: body is not valid JSON", name))
		}
	}
	return warnings
}

func contentType(req *restfile.RestRequest) string {
	for _, name := range req.Headers.Keys() {
		if strings.EqualFold(name, "Content-Type") {
			v, _ := req.Headers.Get(name)
			return v.Raw
		}
	}
	return ""
}

func hasPlaceholders(tpl template.Template) bool {
	for _, part := range tpl.Parts {
		if part.Kind == template.PartVariable {
			return true
		}
	}
	return false
}

// watchAndRevalidate blocks, re-running revalidate whenever a watched REST
// file is written. Events are debounced so one save does not trigger a
// cascade of re-checks.
func watchAndRevalidate(cmd *cobra.Command, args []string, revalidate func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to watch %s: %v\n", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && isRestFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\n", event.Name)
					revalidate()
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
