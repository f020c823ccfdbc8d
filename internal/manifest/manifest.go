package manifest

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrManifestNotFound is returned by Load when no manifest file exists
	// in any of the search paths.
	ErrManifestNotFound = errors.New("module manifest not found")

	// ErrNotConfigured is returned when a variable has no value from any source.
	ErrNotConfigured = errors.New("variable not configured")

	// ErrUnknownVariable is returned when a variable is not declared by the manifest.
	ErrUnknownVariable = errors.New("variable not declared by module manifest")
)

// Provider supplies configuration values by name.
type Provider interface {
	Variable(name string) (string, error)
}

// Ensure both providers implement the interface.
var (
	_ Provider = (*Manifest)(nil)
	_ Provider = Static(nil)
)

// Variable is a single configurable value declared by a manifest.
type Variable struct {
	// Name is how the variable is looked up, e.g. "api-key".
	Name string `yaml:"name" mapstructure:"name"`

	// Description is shown to users configuring the module.
	Description string `yaml:"description,omitempty" mapstructure:"description"`

	// Environment names an environment variable that overrides any stored value.
	Environment string `yaml:"environment,omitempty" mapstructure:"environment"`

	// DefaultValue is used when nothing else is set. Variables without a
	// default are required.
	DefaultValue *string `yaml:"default_value,omitempty" mapstructure:"default_value"`
}

// Manifest describes a module and its configuration variables.
type Manifest struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Label   string   `yaml:"label,omitempty" mapstructure:"label"`
	Summary string   `yaml:"summary,omitempty" mapstructure:"summary"`
	Links   []string `yaml:"links,omitempty" mapstructure:"links"`

	Provides struct {
		Programs []string `yaml:"programs,omitempty" mapstructure:"programs"`
	} `yaml:"provides,omitempty" mapstructure:"provides"`

	Config struct {
		Variables []Variable `yaml:"variables,omitempty" mapstructure:"variables"`
	} `yaml:"config,omitempty" mapstructure:"config"`

	path      string
	configDir string
	lookupEnv func(string) (string, bool)
}

// Path returns the file the manifest was loaded from, if any.
func (m *Manifest) Path() string {
	return m.path
}

// ConfigDir returns the directory holding stored variable values.
func (m *Manifest) ConfigDir() string {
	return m.configDir
}

// Lookup returns the declaration of the named variable.
func (m *Manifest) Lookup(name string) (Variable, bool) {
	for _, v := range m.Config.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Variable resolves the value of the named variable, trying in order:
//
//  1. the variable's environment variable, when declared and non-empty
//  2. the file <config dir>/<name>, with surrounding whitespace trimmed
//  3. the declared default value
//
// It returns an error wrapping ErrUnknownVariable when the manifest does not
// declare the variable, and ErrNotConfigured when no source has a value.
func (m *Manifest) Variable(name string) (string, error) {
	v, ok := m.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q in module %q", ErrUnknownVariable, name, m.Name)
	}

	if v.Environment != "" {
		if value, ok := m.getenv(v.Environment); ok && value != "" {
			return value, nil
		}
	}

	if m.configDir != "" {
		b, err := os.ReadFile(filepath.Join(m.configDir, name))
		switch {
		case err == nil:
			if value := strings.TrimSpace(string(b)); value != "" {
				return value, nil
			}
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("failed to read variable %q: %w", name, err)
		}
	}

	if v.DefaultValue != nil {
		return *v.DefaultValue, nil
	}

	return "", fmt.Errorf("%w: %q in module %q", ErrNotConfigured, name, m.Name)
}

func (m *Manifest) getenv(key string) (string, bool) {
	if m.lookupEnv != nil {
		return m.lookupEnv(key)
	}
	return os.LookupEnv(key)
}

// Write stores the manifest as <dir>/<name>.yaml and returns the file path.
func (m *Manifest) Write(dir string) (string, error) {
	if m.Name == "" {
		return "", errors.New("manifest has no name")
	}

	b, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}

	path := filepath.Join(dir, m.Name+".yaml")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return path, nil
}

// HomeDir returns the user's home directory, or "." when it is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return cmp.Or(os.Getenv("HOME"), os.Getenv("USERPROFILE"), ".")
	}
	return home
}
