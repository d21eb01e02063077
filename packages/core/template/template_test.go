package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) Part {
	return Part{Kind: PartText, Value: s, Span: s}
}

func variable(name string) Part {
	return Part{Kind: PartVariable, Value: name, Span: "{{" + name + "}}"}
}

func TestParse_Parts(t *testing.T) {
	tpl, err := Parse("hello {{name}}! swag")
	require.NoError(t, err)
	assert.Equal(t, []Part{text("hello "), variable("name"), text("! swag")}, tpl.Parts)

	tpl, err = Parse("{{name}}")
	require.NoError(t, err)
	assert.Equal(t, []Part{variable("name")}, tpl.Parts)

	tpl, err = Parse("plain text only")
	require.NoError(t, err)
	assert.Equal(t, []Part{text("plain text only")}, tpl.Parts)
}

func TestParse_WhitespaceInPlaceholder(t *testing.T) {
	tpl, err := Parse("{{first }} {{ last }}")
	require.NoError(t, err)
	require.Len(t, tpl.Parts, 3)
	assert.Equal(t, PartVariable, tpl.Parts[0].Kind)
	assert.Equal(t, "first", tpl.Parts[0].Value)
	assert.Equal(t, "{{first }}", tpl.Parts[0].Span)
	assert.Equal(t, " ", tpl.Parts[1].Value)
	assert.Equal(t, "last", tpl.Parts[2].Value)
}

func TestParse_Empty(t *testing.T) {
	tpl, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, tpl.Parts)
	assert.Equal(t, "", tpl.Render(NewMap()))
}

func TestParse_CloseWithoutOpenIsText(t *testing.T) {
	tpl, err := Parse("weird }} but fine")
	require.NoError(t, err)
	assert.Equal(t, []Part{text("weird }} but fine")}, tpl.Parts)
}

func TestParse_MalformedStrict(t *testing.T) {
	for _, input := range []string{
		"{{never closed",
		"before {{",
		"{{123}}",
		"{{a}} then {{oops",
	} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNew_MalformedFallsBackToText(t *testing.T) {
	tpl := New("before {{oops")
	assert.Equal(t, []Part{text("before "), text("{{oops")}, tpl.Parts)
	assert.Equal(t, "before {{oops", tpl.Raw)
}

func TestTemplate_SpanRoundTrip(t *testing.T) {
	inputs := []string{
		"hello {{name}}! swag",
		"{{first }} {{ last }}",
		"{{VAR}}?x={{b}}&word=cool",
		"no variables at all",
		"",
	}
	for _, input := range inputs {
		tpl, err := Parse(input)
		require.NoError(t, err)

		var b strings.Builder
		for _, p := range tpl.Parts {
			b.WriteString(p.Span)
		}
		assert.Equal(t, input, b.String())
		assert.Equal(t, input, tpl.Raw)
	}
}

func TestTemplate_Render(t *testing.T) {
	vars := NewMap()
	vars.Set("name", New("Joe"))

	tpl := New("hello {{name}}!")
	assert.Equal(t, "hello Joe!", tpl.Render(vars))

	// Missing variables render blank, never error.
	tpl = New("hello {{nobody}}!")
	assert.Equal(t, "hello !", tpl.Render(vars))

	// Rendering with an empty binding blanks every placeholder.
	tpl = New("{{a}}-{{b}}-tail")
	assert.Equal(t, "--tail", tpl.Render(NewMap()))
}

func TestTemplate_RenderNestedVariables(t *testing.T) {
	vars := NewMap()
	vars.Set("HOST", New("{{scheme}}://x.com"))
	vars.Set("scheme", New("https"))

	tpl := New("{{HOST}}/get")
	assert.Equal(t, "https://x.com/get", tpl.Render(vars))
}

func TestTemplate_RenderCycleStops(t *testing.T) {
	vars := NewMap()
	vars.Set("a", New("{{b}}"))
	vars.Set("b", New("{{a}}"))

	tpl := New("{{a}}")
	assert.Equal(t, "", tpl.Render(vars))
}

func TestMap_OrderAndOverwrite(t *testing.T) {
	m := NewMap()
	m.Set("HOST", New("a"))
	m.Set("TOKEN", New("t"))
	m.Set("HOST", New("b"))

	assert.Equal(t, []string{"HOST", "TOKEN"}, m.Keys())
	v, ok := m.Get("HOST")
	require.True(t, ok)
	assert.Equal(t, "b", v.Raw)
	assert.Equal(t, 2, m.Len())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}
