package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatFile prints a summary of a parsed document: each request with its
// method and target, and in verbose mode the variable table and per-request
// details.
func (f *ConsoleFormatter) FormatFile(path string, format *restfile.RestFormat) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(f.writer, "%s (%s, %d requests)\n", bold(path), format.Flavor, len(format.Requests))

	if f.verbose && format.Variables.Len() > 0 {
		fmt.Fprintf(f.writer, "  variables:\n")
		for _, name := range format.Variables.Keys() {
			v, _ := format.Variables.Get(name)
			fmt.Fprintf(f.writer, "    %s = %s\n", name, v.Raw)
		}
	}

	for i, req := range format.Requests {
		name := req.Name
		if name == "" {
			name = fmt.Sprintf("request %d", i+1)
		}
		fmt.Fprintf(f.writer, "  %s %s %s\n", cyan(req.Method.Raw), req.URL.Raw, yellow(name))

		if !f.verbose {
			continue
		}
		for _, key := range req.Query.Keys() {
			v, _ := req.Query.Get(key)
			fmt.Fprintf(f.writer, "    ? %s=%s\n", key, v.Raw)
		}
		for _, key := range req.Headers.Keys() {
			v, _ := req.Headers.Get(key)
			fmt.Fprintf(f.writer, "    > %s: %s\n", key, v.Raw)
		}
		if req.Authorization != nil {
			fmt.Fprintf(f.writer, "    > authorization: %s\n", req.Authorization.Scheme)
		}
		if req.Body != nil {
			fmt.Fprintf(f.writer, "    body: %s\n", describeBody(req.Body))
		}
	}
}

func describeBody(body *restfile.Body) string {
	switch body.Kind {
	case restfile.BodyLoadFile:
		return "from file " + body.Filepath.Raw
	case restfile.BodySaveFile:
		return "text, response saved to " + body.Filepath.Raw
	default:
		return fmt.Sprintf("text (%d bytes)", len(body.Text.Raw))
	}
}

func (f *ConsoleFormatter) FormatValid(path string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", green("✓"), path)
}

func (f *ConsoleFormatter) FormatError(path string, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s: %v\n", red("✗"), path, err)
}

func (f *ConsoleFormatter) FormatWarning(path, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s: %s\n", yellow("!"), path, message)
}
