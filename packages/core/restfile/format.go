package restfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

// requestTerminator joins classified request lines back into one block of
// text; the decoder splits headers from body on a doubled terminator.
const requestTerminator = "\r\n"

// RestFormat is the result of parsing one document: the requests in order,
// the document-wide variable table and the detected dialect. It is plain
// read-only data once Parse returns.
type RestFormat struct {
	Requests  []*RestRequest
	Variables *template.Map
	Flavor    Flavor
}

// ParseFile reads path into memory, infers the flavor from the extension
// and parses the contents.
func ParseFile(path string) (*RestFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading REST file %s: %w", path, err)
	}
	f, err := Parse(string(data), FlavorFromPath(path))
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return f, nil
}

// Parse parses an in-memory document with an explicit flavor. A document
// either parses completely or Parse fails; there is no partial result.
func Parse(text string, flavor Flavor) (*RestFormat, error) {
	lines, vars, err := classifyLines(text)
	if err != nil {
		return nil, err
	}
	return fromLines(lines, vars, flavor)
}

// fromLines walks the classified lines, accumulating the current request's
// name, commands and raw text, and flushes the accumulator into the decoder
// whenever a separator is hit or input ends. A flush with only blank text is
// a no-op, so a document ending in a bare separator does not produce an
// empty trailing request.
func fromLines(lines []line, vars *template.Map, flavor Flavor) (*RestFormat, error) {
	format := &RestFormat{Variables: vars, Flavor: flavor}

	var (
		curName     string
		curCommands Commands
		curText     strings.Builder
		curLine     int
	)

	reset := func() {
		curName = ""
		curCommands = nil
		curText.Reset()
		curLine = 0
	}

	flush := func() error {
		if strings.TrimSpace(curText.String()) == "" {
			return nil
		}
		req, err := decodeRequest(curName, curCommands, curText.String(), curLine)
		if err != nil {
			return err
		}
		format.Requests = append(format.Requests, req)
		return nil
	}

	for _, ln := range lines {
		switch ln.kind {
		case lineSeparator:
			if err := flush(); err != nil {
				return nil, err
			}
			reset()
			curName = ln.name
		case lineName:
			// The annotation wins over a separator-provided name.
			curName = ln.name
		case lineCommand:
			curCommands = curCommands.set(ln.name, ln.params)
		case lineRequest:
			if curLine == 0 {
				curLine = ln.number
			}
			curText.WriteString(ln.value)
			curText.WriteString(requestTerminator)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return format, nil
}
