package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
)

func parseFixture(t *testing.T) *restfile.RestFormat {
	t.Helper()
	input := "@HOST = http://x.com\n" +
		"### GetData\n" +
		"GET {{HOST}}/get?page=1 HTTP/1.1\n" +
		"Accept: application/json\n" +
		"\n" +
		"### Upload\n" +
		"POST {{HOST}}/upload HTTP/1.1\n" +
		"\n" +
		"< ./payload.json"

	format, err := restfile.Parse(input, restfile.FlavorJetbrains)
	require.NoError(t, err)
	return format
}

func TestConsoleFormatter_FormatFile(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatFile("api.http", parseFixture(t))

	out := buf.String()
	assert.Contains(t, out, "api.http (jetbrains, 2 requests)")
	assert.Contains(t, out, "GET {{HOST}}/get GetData")
	assert.Contains(t, out, "POST {{HOST}}/upload Upload")
}

func TestConsoleFormatter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatFile("api.http", parseFixture(t))

	out := buf.String()
	assert.Contains(t, out, "HOST = http://x.com")
	assert.Contains(t, out, "? page=1")
	assert.Contains(t, out, "> Accept: application/json")
	assert.Contains(t, out, "body: from file ./payload.json")
}

func TestConsoleFormatter_ValidErrorWarning(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatValid("good.http")
	f.FormatError("bad.http", assert.AnError)
	f.FormatWarning("odd.http", "something looks off")

	out := buf.String()
	assert.Contains(t, out, "✓ good.http")
	assert.Contains(t, out, "✗ bad.http")
	assert.Contains(t, out, "! odd.http: something looks off")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatFile("api.http", parseFixture(t))
	require.NoError(t, f.Flush())

	var files []JSONFile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &files))
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "api.http", file.File)
	assert.Equal(t, "jetbrains", file.Flavor)
	assert.Equal(t, "http://x.com", file.Variables["HOST"])
	require.Len(t, file.Requests, 2)

	assert.Equal(t, "GetData", file.Requests[0].Name)
	assert.Equal(t, "{{HOST}}/get", file.Requests[0].URL)
	assert.Equal(t, "1", file.Requests[0].Query["page"])

	require.NotNil(t, file.Requests[1].Body)
	assert.Equal(t, "loadFile", file.Requests[1].Body.Kind)
	assert.Equal(t, "./payload.json", file.Requests[1].Body.Filepath)
}
