package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ModuleDirEnv overrides the directory searched first for manifests.
const ModuleDirEnv = "ASIMOV_MODULE_DIR"

// SearchPaths returns the directories searched for manifests, in order.
func SearchPaths() []string {
	var dirs []string
	if dir := os.Getenv(ModuleDirEnv); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs,
		filepath.Join(".asimov", "modules"),
		filepath.Join(HomeDir(), ".asimov", "modules"),
	)
}

// DefaultConfigDir returns where stored values for the named module live.
func DefaultConfigDir(name string) string {
	return filepath.Join(HomeDir(), ".asimov", "configs", name)
}

type loadOptions struct {
	searchPaths []string
	configDir   *string
	lookupEnv   func(string) (string, bool)
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithSearchPaths replaces the default manifest search paths.
func WithSearchPaths(dirs ...string) LoadOption {
	return func(o *loadOptions) {
		o.searchPaths = dirs
	}
}

// WithConfigDir sets the directory holding stored variable values. An empty
// dir disables stored values.
func WithConfigDir(dir string) LoadOption {
	return func(o *loadOptions) {
		o.configDir = &dir
	}
}

// WithLookupEnv replaces os.LookupEnv when resolving variables.
func WithLookupEnv(fn func(string) (string, bool)) LoadOption {
	return func(o *loadOptions) {
		o.lookupEnv = fn
	}
}

// Load reads the manifest for the named module, e.g. "xai", from the first
// search path holding a <name>.yaml, <name>.yml, or <name>.json file.
func Load(name string, opts ...LoadOption) (*Manifest, error) {
	o := &loadOptions{searchPaths: SearchPaths()}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetConfigName(name)
	for _, dir := range o.searchPaths {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %q", ErrManifestNotFound, name)
		}
		return nil, fmt.Errorf("failed to read module manifest %q: %w", name, err)
	}

	m := &Manifest{}
	if err := v.Unmarshal(m); err != nil {
		return nil, fmt.Errorf("failed to decode module manifest %q: %w", v.ConfigFileUsed(), err)
	}
	if m.Name == "" {
		m.Name = name
	}

	m.path = v.ConfigFileUsed()
	m.configDir = DefaultConfigDir(m.Name)
	if o.configDir != nil {
		m.configDir = *o.configDir
	}
	m.lookupEnv = o.lookupEnv

	return m, nil
}

// LoadDotEnv loads environment variables from the given files, or ".env"
// when none are given. Missing files are ignored, and variables that are
// already set are not overridden.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, filename := range filenames {
		if err := godotenv.Load(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", filename, err)
		}
	}

	return nil
}
