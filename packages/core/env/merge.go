package env

import (
	"os"
	"strings"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

// Merge overlays the given tables left to right: a later layer overwrites
// an earlier binding in place, so a key keeps the position of its first
// appearance. Nil layers are skipped.
func Merge(layers ...*template.Map) *template.Map {
	merged := template.NewMap()
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		for _, key := range layer.Keys() {
			v, _ := layer.Get(key)
			merged.Set(key, v)
		}
	}
	return merged
}

// SystemEnv reads the process environment into a variable table. With a
// non-empty prefix only matching keys are kept, with the prefix stripped.
func SystemEnv(prefix string) *template.Map {
	vars := template.NewMap()
	for _, entry := range os.Environ() {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		if prefix != "" {
			stripped, ok := strings.CutPrefix(key, prefix)
			if !ok || stripped == "" {
				continue
			}
			key = stripped
		}
		vars.Set(key, template.Text(value))
	}
	return vars
}
