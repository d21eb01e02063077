// Package curl renders parsed requests as curl command lines. Placeholders
// become shell variable references and the document's variable table becomes
// a prefix of shell assignments, so the emitted command stays editable.
package curl

import (
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

type Renderer struct {
	vars *template.Map
}

func New(vars *template.Map) *Renderer {
	if vars == nil {
		vars = template.NewMap()
	}
	return &Renderer{vars: vars}
}

// Request renders one request as a single shell line: variable assignments,
// then curl with url, query, method, output file, headers and body.
func (r *Renderer) Request(req *restfile.RestRequest) (string, error) {
	body, output, err := r.renderBody(req.Body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(r.renderVariables())
	sb.WriteString("curl ")
	sb.WriteString(fmt.Sprintf("%q", shellRef(req.URL)))
	sb.WriteString(r.renderQuery(req.Query))
	sb.WriteString(" -X " + shellRef(req.Method))
	sb.WriteString(output)
	sb.WriteString(r.renderAuthorization(req.Authorization))
	sb.WriteString(r.renderHeaders(req.Headers))
	sb.WriteString(body)
	return sb.String(), nil
}

// renderVariables emits the document variables as shell assignments so the
// $var references in the rest of the command resolve.
func (r *Renderer) renderVariables() string {
	if r.vars.Len() == 0 {
		return ""
	}
	var parts []string
	for _, key := range r.vars.Keys() {
		v, _ := r.vars.Get(key)
		parts = append(parts, fmt.Sprintf("%s=%q", key, shellRef(v)))
	}
	return strings.Join(parts, "; ") + "; "
}

func (r *Renderer) renderQuery(query *template.Map) string {
	if query.Len() == 0 {
		return ""
	}
	var pairs []string
	for _, key := range query.Keys() {
		v, _ := query.Get(key)
		pairs = append(pairs, key+"="+shellRef(v))
	}
	return "?" + strings.Join(pairs, "&")
}

func (r *Renderer) renderHeaders(headers *template.Map) string {
	if headers.Len() == 0 {
		return ""
	}
	var parts []string
	for _, key := range headers.Keys() {
		v, _ := headers.Get(key)
		parts = append(parts, fmt.Sprintf("-H %q", key+": "+shellRef(v)))
	}
	return " " + strings.Join(parts, " ")
}

func (r *Renderer) renderAuthorization(auth *restfile.Authorization) string {
	if auth == nil {
		return ""
	}
	if auth.Scheme == restfile.AuthBasic {
		creds := auth.Username
		if auth.Password != nil {
			creds += ":" + *auth.Password
		}
		return fmt.Sprintf(" -u %q", creds)
	}
	return fmt.Sprintf(" -H %q", "Authorization: Bearer "+auth.Token)
}

// renderBody returns the -d fragment and, for save-to-file bodies, the -o
// fragment. A load-from-file body is read from disk here, with its path
// rendered against the variable table first.
func (r *Renderer) renderBody(body *restfile.Body) (data, output string, err error) {
	if body == nil {
		return "", "", nil
	}

	var text string
	switch body.Kind {
	case restfile.BodyLoadFile:
		text, err = r.loadBodyFromFile(body)
		if err != nil {
			return "", "", err
		}
	case restfile.BodySaveFile:
		text = shellRef(body.Text)
		output = fmt.Sprintf(" -o %q", shellRef(body.Filepath))
	default:
		text = shellRef(body.Text)
	}

	encoded := strings.NewReplacer("&\r\n", "", "\n", "", "\r", "", `"`, `\"`).Replace(text)
	return ` -d "` + encoded + `"`, output, nil
}

func (r *Renderer) loadBodyFromFile(body *restfile.Body) (string, error) {
	path := body.Filepath.Render(r.vars)
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading body file %s: %w", path, err)
	}
	if !body.ProcessVariables {
		return string(raw), nil
	}
	return shellRef(template.New(string(raw))), nil
}

// shellRef renders a template with placeholders as $name shell references
// instead of resolved values.
func shellRef(tpl template.Template) string {
	var sb strings.Builder
	for _, part := range tpl.Parts {
		if part.Kind == template.PartVariable {
			sb.WriteString("$" + part.Value)
		} else {
			sb.WriteString(part.Value)
		}
	}
	return sb.String()
}
