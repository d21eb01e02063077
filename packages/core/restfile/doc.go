// Package restfile parses IDE-style REST client files (.http / .rest) into a
// structured, renderable model.
//
// A document is processed in two passes:
//   - a line classifier scans the text once, recognizing separators, name
//     and command annotations, comments and variable assignments, and keeps
//     everything else as raw request lines;
//   - an assembler groups the classified lines per request and feeds each
//     group through a request decoder, which splits headers from body,
//     runs the request line through the standard HTTP grammar, and turns
//     every string-valued field into a template.
//
// The result is a RestFormat: the ordered requests plus the document-wide
// variable table. The model is read-only data; executing requests or
// rendering them to other formats is left to consumers.
package restfile
