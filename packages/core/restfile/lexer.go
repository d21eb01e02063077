package restfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

type lineKind int

const (
	lineSeparator lineKind = iota
	lineName
	lineCommand
	lineComment
	lineVariable
	lineRequest
)

// line is the classifier's token: one physical line, tagged.
type line struct {
	kind   lineKind
	name   string  // separator name, annotation name, command or variable name
	value  string  // variable value, or the request line verbatim
	params *string // command parameter, nil when absent
	number int
}

var (
	// ### with an optional name; the name stops at the next space.
	separatorPattern = regexp.MustCompile(`^###(?:[ \t]+([^ \t\r\n]+))?`)

	// # @name X  |  // @name=X  — the annotation needs '=' or a space
	// between @name and the value.
	namePattern = regexp.MustCompile(`^(?://|#)[ \t]*@name[= ][ \t]*([^ \t\r\n]*)`)

	// # @no-log  |  # @timeout 300 — any other comment-prefixed @command,
	// with the rest of the line as an optional parameter.
	commandPattern = regexp.MustCompile(`^(?://|#)[ \t]*@([^ \t\r\n]+)[ \t]*(.*)$`)

	// @HOST = http://x.com — a document variable assignment.
	variablePattern = regexp.MustCompile(`^@([A-Za-z][A-Za-z0-9_.-]*)[ \t]*=[ \t]*(.*)$`)
)

type lineMatcher func(s string) (line, bool)

// Classification is strictly ordered: the first matcher that accepts the
// line wins. New line kinds slot into this list without touching the
// individual matchers.
var lineMatchers = []lineMatcher{
	matchSeparator,
	matchName,
	matchCommand,
	matchComment,
	matchVariable,
}

func classifyLine(s string) line {
	for _, match := range lineMatchers {
		if ln, ok := match(s); ok {
			return ln
		}
	}
	return line{kind: lineRequest, value: s}
}

func matchSeparator(s string) (line, bool) {
	m := separatorPattern.FindStringSubmatch(s)
	if m == nil {
		return line{}, false
	}
	return line{kind: lineSeparator, name: m[1]}, true
}

func matchName(s string) (line, bool) {
	m := namePattern.FindStringSubmatch(s)
	if m == nil {
		return line{}, false
	}
	return line{kind: lineName, name: m[1]}, true
}

func matchCommand(s string) (line, bool) {
	m := commandPattern.FindStringSubmatch(s)
	if m == nil {
		return line{}, false
	}
	ln := line{kind: lineCommand, name: m[1]}
	if m[2] != "" {
		params := m[2]
		ln.params = &params
	}
	return ln, true
}

func matchComment(s string) (line, bool) {
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, "#") {
		return line{kind: lineComment}, true
	}
	return line{}, false
}

func matchVariable(s string) (line, bool) {
	m := variablePattern.FindStringSubmatch(s)
	if m == nil {
		return line{}, false
	}
	return line{kind: lineVariable, name: m[1], value: m[2]}, true
}

// classifyLines scans the whole document. Comments are dropped and variable
// assignments are recorded directly into the returned table; every other
// line comes back tagged, in document order. The variable table is global:
// assignments are visible to every request regardless of position, and a
// repeated name overwrites the earlier value.
func classifyLines(text string) ([]line, *template.Map, error) {
	vars := template.NewMap()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, vars, nil
	}

	var lines []line
	for i, raw := range strings.Split(trimmed, "\n") {
		ln := classifyLine(strings.TrimSuffix(raw, "\r"))
		ln.number = i + 1

		switch ln.kind {
		case lineComment:
			continue
		case lineVariable:
			tpl, err := template.Parse(ln.value)
			if err != nil {
				return nil, nil, &ParseError{
					Line:    ln.number,
					Message: fmt.Sprintf("variable %s: %v", ln.name, err),
				}
			}
			vars.Set(ln.name, tpl)
		default:
			lines = append(lines, ln)
		}
	}
	return lines, vars, nil
}
