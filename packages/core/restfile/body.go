package restfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

type BodyKind int

const (
	// BodyText is a literal body, rendered as a template.
	BodyText BodyKind = iota
	// BodyLoadFile reads the body from an external file at render time.
	BodyLoadFile
	// BodySaveFile sends the body text and records that the response
	// should be written to a file. Parsing only records the intent.
	BodySaveFile
)

// Body is one of three variants; Kind selects which fields are meaningful.
type Body struct {
	Kind BodyKind

	// Text is the body for BodyText and BodySaveFile.
	Text template.Template

	// ProcessVariables marks a loaded file whose content should itself be
	// template-rendered ("<@ path" form). Encoding is the optional token
	// between the marker and the path; empty means unspecified.
	ProcessVariables bool
	Encoding         string

	// Filepath is the source path for BodyLoadFile and the destination
	// for BodySaveFile.
	Filepath template.Template
}

const (
	formContentType = "application/x-www-form-urlencoded"
	saveFileMarker  = ">>"
)

// loadFilePattern matches the "<[@][encoding] filepath" directive: a
// leading <, an optional @ (process variables), an optional alphanumeric
// encoding, one mandatory space, then the path verbatim.
var loadFilePattern = regexp.MustCompile(`(?s)^<(@)?([A-Za-z0-9]+)? (.+)$`)

// parseBody classifies a trimmed body block. Load-from-file is tried first,
// then save-to-file, then plain text; a body is never more than one variant.
func parseBody(raw, contentType string, lineNo int) (*Body, error) {
	if contentType == formContentType {
		// Form bodies are conventionally wrapped across lines with
		// trailing '&'; collapse them to the single-line encoded form.
		raw = strings.NewReplacer(requestTerminator, "", "\n", "").Replace(raw)
	}

	if m := loadFilePattern.FindStringSubmatch(raw); m != nil {
		filepath, err := template.Parse(m[3])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("body file path: %v", err)}
		}
		return &Body{
			Kind:             BodyLoadFile,
			ProcessVariables: m[1] == "@",
			Encoding:         m[2],
			Filepath:         filepath,
		}, nil
	}

	if idx := strings.Index(raw, saveFileMarker); idx >= 0 {
		after := raw[idx+len(saveFileMarker):]
		if strings.HasPrefix(after, " ") {
			text, err := template.Parse(strings.TrimRight(raw[:idx], " \t\r\n"))
			if err != nil {
				return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("body: %v", err)}
			}
			filepath, err := template.Parse(after[1:])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("body file path: %v", err)}
			}
			return &Body{Kind: BodySaveFile, Text: text, Filepath: filepath}, nil
		}
	}

	text, err := template.Parse(raw)
	if err != nil {
		return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("body: %v", err)}
	}
	return &Body{Kind: BodyText, Text: text}, nil
}
