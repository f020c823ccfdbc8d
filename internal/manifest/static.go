package manifest

import "fmt"

// Static is a Provider backed by a fixed map, useful in tests and when the
// values come from somewhere other than a manifest.
type Static map[string]string

// Variable returns the value stored under name, or an error wrapping
// ErrNotConfigured when it is missing or empty.
func (s Static) Variable(name string) (string, error) {
	if value, ok := s[name]; ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNotConfigured, name)
}
