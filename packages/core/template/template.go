package template

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	variableStart = "{{"
	variableEnd   = "}}"
)

// Rendering resolves variables whose values are themselves templates, so a
// cycle between variables could recurse forever. Resolution stops silently
// once the chain gets this deep.
const maxRenderDepth = 16

// placeholderPattern matches a complete variable reference at the start of
// the input: {{, optional horizontal whitespace, an identifier, optional
// horizontal whitespace, }}.
var placeholderPattern = regexp.MustCompile(`^\{\{[ \t]*([A-Za-z][A-Za-z0-9_.-]*)[ \t]*\}\}`)

type PartKind int

const (
	PartText PartKind = iota
	PartVariable
)

// Part is one element of a parsed template.
type Part struct {
	Kind PartKind

	// Value holds the literal text for PartText parts and the variable
	// name for PartVariable parts.
	Value string

	// Span is the exact source text the part was parsed from.
	// Concatenating the spans of all parts reproduces Template.Raw.
	Span string
}

// Template is a parsed string value: literal text interleaved with
// {{variable}} placeholders. The zero value is a valid empty template.
type Template struct {
	Raw   string
	Parts []Part
}

// Text builds a single-part literal template. Mostly useful for defaults
// and tests.
func Text(s string) Template {
	if s == "" {
		return Template{}
	}
	return Template{Raw: s, Parts: []Part{{Kind: PartText, Value: s, Span: s}}}
}

// Parse parses s strictly: a {{ that is not followed by a well-formed
// identifier and closing }} is an error.
func Parse(s string) (Template, error) {
	return parse(s, true)
}

// New parses s leniently. If a placeholder is malformed, the remainder of
// the input becomes a final literal part instead of an error.
func New(s string) Template {
	t, _ := parse(s, false)
	return t
}

func parse(s string, strict bool) (Template, error) {
	t := Template{Raw: s}
	rest := s
	for rest != "" {
		idx := strings.Index(rest, variableStart)
		if idx < 0 {
			t.Parts = append(t.Parts, Part{Kind: PartText, Value: rest, Span: rest})
			break
		}
		if idx > 0 {
			text := rest[:idx]
			t.Parts = append(t.Parts, Part{Kind: PartText, Value: text, Span: text})
			rest = rest[idx:]
		}
		m := placeholderPattern.FindStringSubmatch(rest)
		if m == nil {
			if strict {
				return Template{}, fmt.Errorf("malformed template %q: unterminated %s", s, variableStart)
			}
			t.Parts = append(t.Parts, Part{Kind: PartText, Value: rest, Span: rest})
			break
		}
		t.Parts = append(t.Parts, Part{Kind: PartVariable, Value: m[1], Span: m[0]})
		rest = rest[len(m[0]):]
	}
	return t, nil
}

// String returns the original source text of the template.
func (t Template) String() string {
	return t.Raw
}

// IsZero reports whether the template has no parts.
func (t Template) IsZero() bool {
	return len(t.Parts) == 0
}

// Render substitutes every variable part with its bound value. Bound values
// are templates themselves and are rendered against the same binding.
// Unbound variables render as the empty string. Render never mutates the
// template or the binding.
func (t Template) Render(vars *Map) string {
	return t.render(vars, 0)
}

func (t Template) render(vars *Map, depth int) string {
	var b strings.Builder
	for _, p := range t.Parts {
		switch p.Kind {
		case PartText:
			b.WriteString(p.Value)
		case PartVariable:
			if vars == nil || depth >= maxRenderDepth {
				continue
			}
			if v, ok := vars.Get(p.Value); ok {
				b.WriteString(v.render(vars, depth+1))
			}
		}
	}
	return b.String()
}
