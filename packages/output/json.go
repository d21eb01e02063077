package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

// JSONFile is the JSON shape of one parsed document.
type JSONFile struct {
	File      string            `json:"file"`
	Flavor    string            `json:"flavor"`
	Variables map[string]string `json:"variables,omitempty"`
	Requests  []JSONRequest     `json:"requests"`
}

// JSONRequest is the JSON shape of one request. Template values are emitted
// in their raw form, placeholders included.
type JSONRequest struct {
	Name          string            `json:"name,omitempty"`
	Method        string            `json:"method"`
	URL           string            `json:"url"`
	Query         map[string]string `json:"query,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	Authorization string            `json:"authorization,omitempty"`
	Body          *JSONBody         `json:"body,omitempty"`
	Commands      map[string]string `json:"commands,omitempty"`
}

type JSONBody struct {
	Kind             string `json:"kind"`
	Text             string `json:"text,omitempty"`
	Filepath         string `json:"filepath,omitempty"`
	ProcessVariables bool   `json:"processVariables,omitempty"`
	Encoding         string `json:"encoding,omitempty"`
}

// JSONFormatter accumulates parsed files and writes them as one JSON
// document on Flush.
type JSONFormatter struct {
	writer io.Writer
	files  []JSONFile
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		files:  make([]JSONFile, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatFile(path string, format *restfile.RestFormat) {
	file := JSONFile{
		File:      path,
		Flavor:    format.Flavor.String(),
		Variables: rawValues(format.Variables.Keys(), format.Variables),
		Requests:  make([]JSONRequest, 0, len(format.Requests)),
	}

	for _, req := range format.Requests {
		jr := JSONRequest{
			Name:    req.Name,
			Method:  req.Method.Raw,
			URL:     req.URL.Raw,
			Query:   rawValues(req.Query.Keys(), req.Query),
			Headers: rawValues(req.Headers.Keys(), req.Headers),
		}
		if req.Authorization != nil {
			jr.Authorization = req.Authorization.Scheme.String()
		}
		if req.Body != nil {
			jr.Body = &JSONBody{
				Kind:             bodyKindName(req.Body.Kind),
				Text:             req.Body.Text.Raw,
				Filepath:         req.Body.Filepath.Raw,
				ProcessVariables: req.Body.ProcessVariables,
				Encoding:         req.Body.Encoding,
			}
		}
		if len(req.Commands) > 0 {
			jr.Commands = make(map[string]string, len(req.Commands))
			for _, cmd := range req.Commands {
				params := ""
				if cmd.Params != nil {
					params = *cmd.Params
				}
				jr.Commands[cmd.Name] = params
			}
		}
		file.Requests = append(file.Requests, jr)
	}

	f.files = append(f.files, file)
}

// Flush writes the accumulated output.
func (f *JSONFormatter) Flush() error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.files)
}

func rawValues(keys []string, m *template.Map) map[string]string {
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, _ := m.Get(k)
		out[k] = v.Raw
	}
	return out
}

func bodyKindName(kind restfile.BodyKind) string {
	switch kind {
	case restfile.BodyLoadFile:
		return "loadFile"
	case restfile.BodySaveFile:
		return "saveFile"
	default:
		return "text"
	}
}
