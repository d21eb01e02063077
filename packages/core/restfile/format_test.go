package restfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

func TestParse_EndToEnd(t *testing.T) {
	input := "@HOST = http://x.com\n### Req\nGET {{HOST}}/get HTTP/1.1"

	format, err := Parse(input, FlavorJetbrains)
	require.NoError(t, err)
	require.Len(t, format.Requests, 1)
	assert.Equal(t, FlavorJetbrains, format.Flavor)

	req := format.Requests[0]
	assert.Equal(t, "Req", req.Name)
	assert.Equal(t, "GET", req.Method.Raw)

	require.Len(t, req.URL.Parts, 2)
	assert.Equal(t, template.PartVariable, req.URL.Parts[0].Kind)
	assert.Equal(t, "HOST", req.URL.Parts[0].Value)
	assert.Equal(t, template.PartText, req.URL.Parts[1].Kind)
	assert.Equal(t, "/get", req.URL.Parts[1].Value)

	assert.Equal(t, "http://x.com/get", req.URL.Render(format.Variables))

	host, ok := format.Variables.Get("HOST")
	require.True(t, ok)
	assert.Equal(t, "http://x.com", host.Raw)
}

func TestParse_SeparatorFlushing(t *testing.T) {
	input := "### First\nGET /a HTTP/1.1\n" +
		"### Second\nPOST /b HTTP/1.1\n" +
		"### Third\nDELETE /c HTTP/1.1"

	format, err := Parse(input, FlavorGeneric)
	require.NoError(t, err)
	require.Len(t, format.Requests, 3)
	assert.Equal(t, "First", format.Requests[0].Name)
	assert.Equal(t, "GET", format.Requests[0].Method.Raw)
	assert.Equal(t, "Second", format.Requests[1].Name)
	assert.Equal(t, "POST", format.Requests[1].Method.Raw)
	assert.Equal(t, "Third", format.Requests[2].Name)
	assert.Equal(t, "DELETE", format.Requests[2].Method.Raw)
}

func TestParse_NoSeparatorYieldsOneRequest(t *testing.T) {
	format, err := Parse("GET https://example.com/api HTTP/1.1", FlavorGeneric)
	require.NoError(t, err)
	require.Len(t, format.Requests, 1)
	assert.Empty(t, format.Requests[0].Name)
}

func TestParse_TrailingSeparatorIsNotARequest(t *testing.T) {
	format, err := Parse("GET /a HTTP/1.1\n###", FlavorGeneric)
	require.NoError(t, err)
	assert.Len(t, format.Requests, 1)
}

func TestParse_NameAnnotationWinsOverSeparator(t *testing.T) {
	input := "### SeparatorName\n# @name=AnnotationName\nGET /x HTTP/1.1"

	format, err := Parse(input, FlavorGeneric)
	require.NoError(t, err)
	require.Len(t, format.Requests, 1)
	assert.Equal(t, "AnnotationName", format.Requests[0].Name)
}

func TestParse_Commands(t *testing.T) {
	input := "### Req\n# @no-log\n# @timeout 300\nGET /x HTTP/1.1"

	format, err := Parse(input, FlavorGeneric)
	require.NoError(t, err)
	require.Len(t, format.Requests, 1)

	cmds := format.Requests[0].Commands
	require.Len(t, cmds, 2)
	assert.True(t, cmds.Has("no-log"))

	params, ok := cmds.Get("no-log")
	require.True(t, ok)
	assert.Nil(t, params)

	params, ok = cmds.Get("timeout")
	require.True(t, ok)
	require.NotNil(t, params)
	assert.Equal(t, "300", *params)
}

func TestParse_DuplicateCommandLastWins(t *testing.T) {
	input := "# @timeout 100\n# @timeout 300\nGET /x HTTP/1.1"

	format, err := Parse(input, FlavorGeneric)
	require.NoError(t, err)

	cmds := format.Requests[0].Commands
	require.Len(t, cmds, 1)
	params, _ := cmds.Get("timeout")
	require.NotNil(t, params)
	assert.Equal(t, "300", *params)
}

func TestParse_VariableScopingIsGlobal(t *testing.T) {
	input := "@HOST = a\n" +
		"### First\nGET {{HOST}}/1 HTTP/1.1\n" +
		"@HOST = b\n" +
		"### Second\nGET {{HOST}}/2 HTTP/1.1"

	format, err := Parse(input, FlavorGeneric)
	require.NoError(t, err)
	require.Len(t, format.Requests, 2)

	// The later assignment wins for every request, wherever it appears.
	assert.Equal(t, "b/1", format.Requests[0].URL.Render(format.Variables))
	assert.Equal(t, "b/2", format.Requests[1].URL.Render(format.Variables))
}

func TestParse_EmptyDocument(t *testing.T) {
	format, err := Parse("", FlavorGeneric)
	require.NoError(t, err)
	assert.Empty(t, format.Requests)
	assert.Equal(t, 0, format.Variables.Len())
}

func TestParse_GrammarFailureAbortsParse(t *testing.T) {
	input := "### Good\nGET /a HTTP/1.1\n### Bad\nGET HTTP/1.1"

	_, err := Parse(input, FlavorGeneric)
	require.Error(t, err)

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.http")
	content := "@HOST = http://x.com\nGET {{HOST}}/get HTTP/1.1"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	format, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, FlavorJetbrains, format.Flavor)
	require.Len(t, format.Requests, 1)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.http"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.http")
}

func TestFlavorFromPath(t *testing.T) {
	assert.Equal(t, FlavorJetbrains, FlavorFromPath("api.http"))
	assert.Equal(t, FlavorVscode, FlavorFromPath("api.rest"))
	assert.Equal(t, FlavorGeneric, FlavorFromPath("api.txt"))
	assert.Equal(t, FlavorGeneric, FlavorFromPath("api"))
}
