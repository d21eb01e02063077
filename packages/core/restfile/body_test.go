package restfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

func parseOneBody(t *testing.T, body string) *Body {
	t.Helper()
	req := parseOne(t, "POST /x HTTP/1.1\n\n"+body)
	require.NotNil(t, req.Body)
	return req.Body
}

func TestParseBody_PlainText(t *testing.T) {
	body := parseOneBody(t, `{"data": "my data"}`)
	assert.Equal(t, BodyText, body.Kind)
	assert.Equal(t, `{"data": "my data"}`, body.Text.Raw)
}

func TestParseBody_Template(t *testing.T) {
	body := parseOneBody(t, `{"user": "{{NAME}}"}`)
	assert.Equal(t, BodyText, body.Kind)

	vars := template.NewMap()
	vars.Set("NAME", template.Text("alice"))
	assert.Equal(t, `{"user": "alice"}`, body.Text.Render(vars))
}

func TestParseBody_MalformedTemplate(t *testing.T) {
	_, err := Parse("POST /x HTTP/1.1\n\n{\"user\": \"{{oops\"}", FlavorGeneric)
	require.Error(t, err)

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseBody_LoadFile(t *testing.T) {
	body := parseOneBody(t, "< ./payload.json")
	assert.Equal(t, BodyLoadFile, body.Kind)
	assert.False(t, body.ProcessVariables)
	assert.Empty(t, body.Encoding)
	assert.Equal(t, "./payload.json", body.Filepath.Raw)
}

func TestParseBody_LoadFileWithVariables(t *testing.T) {
	body := parseOneBody(t, "<@ ./payload.json")
	assert.Equal(t, BodyLoadFile, body.Kind)
	assert.True(t, body.ProcessVariables)
	assert.Empty(t, body.Encoding)
}

func TestParseBody_LoadFileWithEncoding(t *testing.T) {
	body := parseOneBody(t, "<@latin1 ./payload.json")
	assert.Equal(t, BodyLoadFile, body.Kind)
	assert.True(t, body.ProcessVariables)
	assert.Equal(t, "latin1", body.Encoding)
}

func TestParseBody_LoadFileTemplatePath(t *testing.T) {
	body := parseOneBody(t, "< {{DIR}}/payload.json")
	assert.Equal(t, BodyLoadFile, body.Kind)

	require.Len(t, body.Filepath.Parts, 2)
	assert.Equal(t, template.PartVariable, body.Filepath.Parts[0].Kind)
	assert.Equal(t, "DIR", body.Filepath.Parts[0].Value)
}

func TestParseBody_SaveFile(t *testing.T) {
	body := parseOneBody(t, `{"data": "my data"}`+"\n\n>> ./response.json")
	assert.Equal(t, BodySaveFile, body.Kind)
	assert.Equal(t, `{"data": "my data"}`, body.Text.Raw)
	assert.Equal(t, "./response.json", body.Filepath.Raw)
}

func TestParseBody_SaveMarkerNeedsASpace(t *testing.T) {
	body := parseOneBody(t, "1 >>2")
	assert.Equal(t, BodyText, body.Kind)
	assert.Equal(t, "1 >>2", body.Text.Raw)
}

func TestParseBody_FormBodyIsCollapsed(t *testing.T) {
	input := "POST /x HTTP/1.1\n" +
		"Content-Type: application/x-www-form-urlencoded\n" +
		"\n" +
		"name=foo&\n" +
		"age=30"

	req := parseOne(t, input)
	require.NotNil(t, req.Body)
	assert.Equal(t, BodyText, req.Body.Kind)
	assert.Equal(t, "name=foo&age=30", req.Body.Text.Raw)
}

func TestParseBody_NonFormBodyKeepsNewlines(t *testing.T) {
	body := parseOneBody(t, "line one\nline two")
	assert.Equal(t, BodyText, body.Kind)
	assert.Equal(t, "line one\r\nline two", body.Text.Raw)
}
