package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/restfile/packages/core/restfile"
	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

// Config is the project-level configuration.
type Config struct {
	// DefaultFlavor overrides extension-based flavor detection for files
	// with unknown extensions. One of "generic", "jetbrains", "vscode".
	DefaultFlavor string `yaml:"defaultFlavor,omitempty"`

	// DefaultEnvironment names the environment used when none is given.
	DefaultEnvironment string `yaml:"defaultEnvironment,omitempty"`

	// Variables are shared bindings applied to every file.
	Variables map[string]string `yaml:"variables,omitempty"`

	// Environments maps an environment name to its variable overrides.
	Environments map[string]map[string]string `yaml:"environments,omitempty"`

	NoColor bool `yaml:"noColor,omitempty"`
}

// ConfigFilenames contains the possible config file names, checked in order.
var ConfigFilenames = []string{
	".restfile.yaml",
	".restfile.yml",
	"restfile.yaml",
	"restfile.yml",
}

// Load reads configuration from the given path, or searches the current
// directory when path is empty.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}
	return FindAndLoad(".")
}

// FindAndLoad searches dir for a config file and loads the first match.
// With no config file present it returns the defaults.
func FindAndLoad(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadFile(configPath)
		}
	}
	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		DefaultFlavor:      restfile.FlavorGeneric.String(),
		DefaultEnvironment: "",
	}
}

// Flavor resolves the configured default flavor name.
func (c *Config) Flavor() restfile.Flavor {
	return restfile.FlavorFromName(c.DefaultFlavor)
}

// EnvironmentVariables builds the variable table for the named environment:
// shared variables first, then the environment's overrides. An unknown name
// is an error so a typo does not silently fall back to the shared set.
func (c *Config) EnvironmentVariables(name string) (*template.Map, error) {
	vars := template.NewMap()
	for _, key := range sortedKeys(c.Variables) {
		vars.Set(key, template.Text(c.Variables[key]))
	}

	if name == "" {
		name = c.DefaultEnvironment
	}
	if name == "" {
		return vars, nil
	}

	overrides, ok := c.Environments[name]
	if !ok {
		return nil, fmt.Errorf("unknown environment %q", name)
	}
	for _, key := range sortedKeys(overrides) {
		vars.Set(key, template.Text(overrides[key]))
	}
	return vars, nil
}

// sortedKeys gives map iteration a stable order; YAML mappings carry no
// reliable order of their own.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
