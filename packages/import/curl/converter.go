// Package curl converts curl command lines into REST file documents.
package curl

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
)

// Converter converts curl commands to the REST file format.
type Converter struct {
	named bool
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithNames configures whether to emit @name annotations derived from
// the URL path.
func WithNames(named bool) Option {
	return func(c *Converter) {
		c.named = named
	}
}

// NewConverter creates a new curl converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		named: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParsedCurl represents a parsed curl command.
type ParsedCurl struct {
	Method    string
	URL       string
	Headers   []Header
	Body      string
	BasicAuth string
	Output    string
	Name      string
}

// Header keeps headers in command-line order.
type Header struct {
	Name  string
	Value string
}

// ConvertCommand converts a single curl command into one REST file request.
func (c *Converter) ConvertCommand(curlCmd string) (string, error) {
	parsed, err := c.Parse(curlCmd)
	if err != nil {
		return "", err
	}
	return c.render(parsed), nil
}

// ConvertFile converts a file of curl commands, one per line with shell
// continuations, into a complete REST file document. The result is parsed
// back before returning so the conversion can never emit an invalid file.
func (c *Converter) ConvertFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var commands []string
	var currentCmd strings.Builder
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, "\\") {
			currentCmd.WriteString(strings.TrimSuffix(line, "\\"))
			currentCmd.WriteString(" ")
			continue
		}

		currentCmd.WriteString(line)
		commands = append(commands, currentCmd.String())
		currentCmd.Reset()
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if currentCmd.Len() > 0 {
		commands = append(commands, currentCmd.String())
	}

	var sb strings.Builder
	for i, cmd := range commands {
		converted, err := c.ConvertCommand(cmd)
		if err != nil {
			return "", fmt.Errorf("converting command %d: %w", i+1, err)
		}
		sb.WriteString(converted)
		sb.WriteString("\n")
	}

	document := sb.String()
	if _, err := restfile.Parse(document, restfile.FlavorGeneric); err != nil {
		return "", fmt.Errorf("converted document does not parse: %w", err)
	}
	return document, nil
}

// Parse parses a curl command string into a ParsedCurl struct.
func (c *Converter) Parse(curlCmd string) (*ParsedCurl, error) {
	parsed := &ParsedCurl{
		Method: "GET",
	}

	curlCmd = strings.TrimSpace(curlCmd)

	if after, ok := strings.CutPrefix(curlCmd, "curl "); ok {
		curlCmd = after
	} else if curlCmd == "curl" {
		return nil, fmt.Errorf("no URL specified")
	}

	tokens := tokenize(curlCmd)

	i := 0
	for i < len(tokens) {
		token := tokens[i]

		switch {
		case token == "-X" || token == "--request":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.Method = strings.ToUpper(tokens[i+1])
			i += 2

		case token == "-H" || token == "--header":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			if name, value, found := strings.Cut(tokens[i+1], ":"); found {
				parsed.Headers = append(parsed.Headers, Header{
					Name:  strings.TrimSpace(name),
					Value: strings.TrimSpace(value),
				})
			}
			i += 2

		case token == "-d" || token == "--data" || token == "--data-raw" || token == "--data-binary":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.Body = tokens[i+1]
			if parsed.Method == "GET" {
				parsed.Method = "POST"
			}
			i += 2

		case token == "-u" || token == "--user":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.BasicAuth = tokens[i+1]
			i += 2

		case token == "-o" || token == "--output":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.Output = tokens[i+1]
			i += 2

		case token == "-A" || token == "--user-agent":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.Headers = append(parsed.Headers, Header{Name: "User-Agent", Value: tokens[i+1]})
			i += 2

		case token == "-e" || token == "--referer":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.Headers = append(parsed.Headers, Header{Name: "Referer", Value: tokens[i+1]})
			i += 2

		case token == "-b" || token == "--cookie":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("missing value for %s", token)
			}
			parsed.Headers = append(parsed.Headers, Header{Name: "Cookie", Value: tokens[i+1]})
			i += 2

		case strings.HasPrefix(token, "-"):
			// Unknown flag; skip it and a value that is clearly not the URL.
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") && !isURL(tokens[i+1]) {
				i += 2
			} else {
				i++
			}

		default:
			if parsed.URL == "" && isURL(token) {
				parsed.URL = token
			}
			i++
		}
	}

	if parsed.URL == "" {
		return nil, fmt.Errorf("no URL found in curl command")
	}

	parsed.Name = generateName(parsed.URL, parsed.Method)
	return parsed, nil
}

// render writes one request block: separator, optional @name annotation,
// request line, headers and body. Basic credentials become a standard
// Authorization header so the parser's auth decoding picks them up.
func (c *Converter) render(parsed *ParsedCurl) string {
	var sb strings.Builder

	sb.WriteString("### ")
	sb.WriteString(parsed.Name)
	sb.WriteString("\n")

	if c.named {
		sb.WriteString("# @name ")
		sb.WriteString(parsed.Name)
		sb.WriteString("\n")
	}

	sb.WriteString(parsed.Method)
	sb.WriteString(" ")
	sb.WriteString(parsed.URL)
	sb.WriteString(" HTTP/1.1\n")

	if parsed.BasicAuth != "" {
		encoded := base64.StdEncoding.EncodeToString([]byte(parsed.BasicAuth))
		sb.WriteString("Authorization: Basic ")
		sb.WriteString(encoded)
		sb.WriteString("\n")
	}

	for _, h := range parsed.Headers {
		sb.WriteString(h.Name)
		sb.WriteString(": ")
		sb.WriteString(h.Value)
		sb.WriteString("\n")
	}

	if parsed.Body != "" {
		sb.WriteString("\n")
		sb.WriteString(parsed.Body)
		sb.WriteString("\n")
	}

	if parsed.Output != "" {
		if parsed.Body == "" {
			sb.WriteString("\n")
		}
		sb.WriteString("\n>> ")
		sb.WriteString(parsed.Output)
		sb.WriteString("\n")
	}

	return sb.String()
}

// tokenize splits a curl command into tokens, respecting quotes.
func tokenize(cmd string) []string {
	var tokens []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	escaped := false

	for _, r := range cmd {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		switch r {
		case '\\':
			escaped = true
		case '\'':
			if !inDoubleQuote {
				inSingleQuote = !inSingleQuote
			} else {
				current.WriteRune(r)
			}
		case '"':
			if !inSingleQuote {
				inDoubleQuote = !inDoubleQuote
			} else {
				current.WriteRune(r)
			}
		case ' ', '\t':
			if inSingleQuote || inDoubleQuote {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isURL checks if a string looks like a request target.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "{{")
}

var urlPathPattern = regexp.MustCompile(`https?://[^/]+(/[^?#]*)?`)

// generateName derives a request name from the URL path and method, e.g.
// POST https://x.com/users/create becomes post_users_create.
func generateName(url, method string) string {
	matches := urlPathPattern.FindStringSubmatch(url)

	path := "/"
	if len(matches) > 1 && matches[1] != "" {
		path = matches[1]
	}

	path = strings.Trim(path, "/")
	if path == "" {
		path = "root"
	}

	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "-", "_")

	return strings.ToLower(method) + "_" + path
}
