// Package env supplies variable bindings from outside the document: .env
// files, the process environment and explicit overrides. Layers merge into
// a single ordered table that the templates render against.
package env
