// Package template implements the {{variable}} placeholder syntax used by
// REST client files.
//
// A Template is a parsed string value: an ordered sequence of literal text
// and named variable references. Parsing keeps the original source text, so
// a Template can be displayed verbatim or rendered against a variable
// binding, possibly repeatedly with different bindings.
//
// Two parse modes exist:
//   - Parse reports malformed placeholders (an opened {{ that never closes)
//     as errors.
//   - New falls back to treating the unparsable remainder as literal text,
//     matching the lenient behavior expected for URLs and header values.
package template
