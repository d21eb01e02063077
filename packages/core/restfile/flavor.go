package restfile

import (
	"path/filepath"
	"strings"
)

// Flavor is the dialect of the REST file format. The dialects are nearly
// identical; the flavor mostly records where a document came from.
type Flavor int

const (
	FlavorGeneric Flavor = iota
	FlavorJetbrains
	FlavorVscode
)

func (f Flavor) String() string {
	switch f {
	case FlavorJetbrains:
		return "jetbrains"
	case FlavorVscode:
		return "vscode"
	default:
		return "generic"
	}
}

// FlavorFromPath infers the flavor from a file extension: .http is the
// JetBrains dialect, .rest the VSCode one, anything else is generic.
func FlavorFromPath(path string) Flavor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".http":
		return FlavorJetbrains
	case ".rest":
		return FlavorVscode
	default:
		return FlavorGeneric
	}
}

// FlavorFromName maps a flavor name (as written in configuration) back to a
// Flavor. Unknown names are generic.
func FlavorFromName(name string) Flavor {
	switch strings.ToLower(name) {
	case "jetbrains", "http":
		return FlavorJetbrains
	case "vscode", "rest":
		return FlavorVscode
	default:
		return FlavorGeneric
	}
}
