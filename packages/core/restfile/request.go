package restfile

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

const (
	bodyDelimiter = requestTerminator + requestTerminator

	// maxHeaderCount bounds the header block; exceeding it is a parse
	// failure, never silent truncation.
	maxHeaderCount = 64

	defaultMethod      = "GET"
	defaultContentType = "unknown"
	contentTypeHeader  = "Content-Type"
)

// RestRequest is one HTTP-shaped unit of a document. Every string-valued
// field is a template so it can be rendered later against a variable
// binding.
type RestRequest struct {
	// Name comes from a "### Name" separator or a "@name" annotation;
	// empty when neither is present.
	Name          string
	Method        template.Template
	URL           template.Template
	Query         *template.Map
	Headers       *template.Map
	Authorization *Authorization
	Body          *Body
	Commands      Commands
}

// Command is a per-request directive from a "# @command [params]"
// annotation line, e.g. no-log or timeout 300.
type Command struct {
	Name   string
	Params *string
}

// Commands preserves annotation order; a repeated command name overwrites
// the parameter in place.
type Commands []Command

func (c Commands) Get(name string) (*string, bool) {
	for _, cmd := range c {
		if cmd.Name == name {
			return cmd.Params, true
		}
	}
	return nil, false
}

func (c Commands) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

func (c Commands) set(name string, params *string) Commands {
	for i := range c {
		if c[i].Name == name {
			c[i].Params = params
			return c
		}
	}
	return append(c, Command{Name: name, Params: params})
}

// decodeRequest turns one request's accumulated raw text into a typed
// request. lineNo is the document line of the request's first line, used
// for error reporting.
func decodeRequest(name string, commands Commands, raw string, lineNo int) (*RestRequest, error) {
	headerBlock, bodyBlock := splitHeadersAndBody(strings.TrimSpace(raw))

	method, path, rawHeaders, err := parseHeaderBlock(headerBlock, lineNo)
	if err != nil {
		return nil, err
	}

	urlTpl, query, err := splitURLAndQuery(path, lineNo)
	if err != nil {
		return nil, err
	}

	headers, authorization := decodeHeaders(rawHeaders)

	var body *Body
	if bodyBlock != "" {
		body, err = parseBody(bodyBlock, contentTypeOf(headers), lineNo)
		if err != nil {
			return nil, err
		}
	}

	return &RestRequest{
		Name:          name,
		Method:        template.New(method),
		URL:           urlTpl,
		Query:         query,
		Headers:       headers,
		Authorization: authorization,
		Body:          body,
		Commands:      commands,
	}, nil
}

// splitHeadersAndBody splits at the first blank-line delimiter. The body
// keeps any further delimiters it contains: a save-to-file body legitimately
// embeds one between its text and the ">> path" trailer, so only the first
// boundary is structural.
func splitHeadersAndBody(raw string) (header, body string) {
	header, body, found := strings.Cut(raw, bodyDelimiter)
	if !found {
		return raw, ""
	}
	return header, strings.TrimSpace(body)
}

type rawHeader struct {
	name  string
	value string
}

// parseHeaderBlock runs the request line and headers through the standard
// strict HTTP request grammar. Placeholder syntax in the request line is
// swapped for inert markers first so it cannot break the grammar, and the
// extracted method and path are restored afterwards. Header order is
// preserved by re-reading the validated lines in document order.
func parseHeaderBlock(block string, lineNo int) (method, path string, headers []rawHeader, err error) {
	lines := strings.Split(block, requestTerminator)
	if len(lines)-1 > maxHeaderCount {
		return "", "", nil, &ParseError{
			Line:    lineNo,
			Message: fmt.Sprintf("too many headers: %d (limit %d)", len(lines)-1, maxHeaderCount),
		}
	}

	requestLine := normalizeRequestLine(escapePlaceholders(lines[0]))

	// A templated method is not a valid HTTP token, so the grammar would
	// reject it. Swap it for GET on the wire and restore it afterwards.
	var templatedMethod string
	if fields := strings.Fields(requestLine); len(fields) > 0 && strings.Contains(fields[0], markerOpen) {
		templatedMethod = unescapePlaceholders(fields[0])
		fields[0] = defaultMethod
		requestLine = strings.Join(fields, " ")
	}

	wire := requestLine + requestTerminator + strings.Join(lines[1:], requestTerminator) + bodyDelimiter

	req, err := http.ReadRequest(bufio.NewReader(strings.NewReader(wire)))
	if err != nil {
		return "", "", nil, &ParseError{
			Line:    lineNo,
			Message: fmt.Sprintf("malformed request: %v", err),
		}
	}

	path = unescapePlaceholders(strings.TrimPrefix(req.RequestURI, syntheticRoot))
	if path == "" {
		return "", "", nil, &ParseError{Line: lineNo, Message: "request has no path"}
	}

	method = unescapePlaceholders(req.Method)
	if templatedMethod != "" {
		method = templatedMethod
	}
	if method == "" {
		method = defaultMethod
	}

	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		name, value, ok := strings.Cut(l, ":")
		if !ok {
			// The strict grammar above already rejected such lines.
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !utf8.ValidString(value) {
			return "", "", nil, &ParseError{
				Line:    lineNo,
				Message: fmt.Sprintf("header %s is not valid text", name),
			}
		}
		headers = append(headers, rawHeader{name: name, value: value})
	}
	return method, path, headers, nil
}

var (
	httpMethods = map[string]struct{}{
		"GET": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {},
		"HEAD": {}, "OPTIONS": {}, "TRACE": {}, "CONNECT": {},
	}
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

func isHTTPMethod(s string) bool {
	_, ok := httpMethods[strings.ToUpper(s)]
	return ok
}

// normalizeRequestLine fills in the shorthands both IDE dialects accept: a
// missing HTTP version and a missing method (plain "https://x.com" lines
// default to GET). A request target with no scheme and no leading slash is
// additionally anchored under a synthetic root so the strict URI grammar
// accepts it; the anchor is stripped again after parsing.
func normalizeRequestLine(s string) string {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return s
	case 1:
		return defaultMethod + " " + anchorTarget(fields[0]) + " HTTP/1.1"
	}

	hasVersion := strings.HasPrefix(fields[len(fields)-1], "HTTP/")
	if len(fields) == 2 {
		if hasVersion && !isHTTPMethod(fields[0]) {
			fields = append([]string{defaultMethod}, fields...)
		} else if !hasVersion {
			fields = append(fields, "HTTP/1.1")
		}
	} else if !hasVersion {
		fields = append(fields, "HTTP/1.1")
	}

	if len(fields) >= 3 {
		fields[1] = anchorTarget(fields[1])
	}
	return strings.Join(fields, " ")
}

func anchorTarget(target string) string {
	if strings.HasPrefix(target, "/") || schemePattern.MatchString(target) {
		return target
	}
	return syntheticRoot + target
}

// splitURLAndQuery separates the request target at the first '?' and decodes
// the query string with standard URL semantics, reusing net/url by wrapping
// the query in a synthetic base URL. Keys keep their document order.
func splitURLAndQuery(path string, lineNo int) (template.Template, *template.Map, error) {
	rawURL, rawQuery, found := strings.Cut(path, "?")
	urlTpl := template.New(rawURL)
	query := template.NewMap()
	if !found || rawQuery == "" {
		return urlTpl, query, nil
	}

	if _, err := url.Parse("http://localhost?" + rawQuery); err != nil {
		return template.Template{}, nil, &ParseError{
			Line:    lineNo,
			Message: fmt.Sprintf("invalid query %q: %v", rawQuery, err),
		}
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return template.Template{}, nil, &ParseError{
				Line:    lineNo,
				Message: fmt.Sprintf("invalid query %q: %v", pair, err),
			}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return template.Template{}, nil, &ParseError{
				Line:    lineNo,
				Message: fmt.Sprintf("invalid query %q: %v", pair, err),
			}
		}
		query.Set(key, template.New(value))
	}
	return urlTpl, query, nil
}

func contentTypeOf(headers *template.Map) string {
	for _, name := range headers.Keys() {
		if strings.EqualFold(name, contentTypeHeader) {
			v, _ := headers.Get(name)
			return v.Raw
		}
	}
	return defaultContentType
}
