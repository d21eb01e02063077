package restfile

import (
	"regexp"
	"strings"
)

// The strict HTTP grammar rejects template placeholders: "{{ HOST }}/get"
// has whitespace and braces where a request target allows neither. Before
// the grammar runs, every placeholder span in the request line is rewritten
// with markers from the Unicode private use area, which cannot occur in a
// human-authored path, and the rewrite is reversed verbatim on the extracted
// method and path. Nothing else is ever escaped.
const (
	markerOpen  = "\uE000"
	markerClose = "\uE001"
	markerSpace = "\uE002"
	markerTab   = "\uE003"

	// syntheticRoot anchors schemeless targets like "{{HOST}}/get" so the
	// URI grammar accepts them; it is stripped from the extracted path.
	syntheticRoot = "/\uE004"
)

var placeholderSpan = regexp.MustCompile(`\{\{[^{}]*\}\}`)

var (
	escaper = strings.NewReplacer(
		"{{", markerOpen,
		"}}", markerClose,
		" ", markerSpace,
		"\t", markerTab,
	)
	unescaper = strings.NewReplacer(
		markerOpen, "{{",
		markerClose, "}}",
		markerSpace, " ",
		markerTab, "\t",
	)
)

func escapePlaceholders(s string) string {
	return placeholderSpan.ReplaceAllStringFunc(s, escaper.Replace)
}

func unescapePlaceholders(s string) string {
	return unescaper.Replace(s)
}
