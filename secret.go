package xai

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// redacted is printed in place of a secret value.
const redacted = "[REDACTED]"

// SecretString holds a value, such as an API key, that must not show up in
// logs, error messages, or other incidental output. The only way to read the
// value is [SecretString.Expose].
//
// The zero value is an empty secret.
type SecretString struct {
	value string
}

var (
	_ fmt.Stringer               = SecretString{}
	_ fmt.GoStringer             = SecretString{}
	_ fmt.Formatter              = SecretString{}
	_ json.Marshaler             = SecretString{}
	_ zerolog.LogObjectMarshaler = SecretString{}
)

// NewSecretString wraps s as a secret.
func NewSecretString(s string) SecretString {
	return SecretString{value: s}
}

// Expose returns the wrapped value. Call it only where the value is sent
// over the wire, never to print it.
func (s SecretString) Expose() string {
	return s.value
}

// IsEmpty reports whether the secret holds no value.
func (s SecretString) IsEmpty() bool {
	return s.value == ""
}

// String implements [fmt.Stringer].
func (SecretString) String() string {
	return redacted
}

// GoString implements [fmt.GoStringer].
func (SecretString) GoString() string {
	return "xai.SecretString{" + redacted + "}"
}

// Format implements [fmt.Formatter] so every verb, including %#v and %x,
// prints the redacted form.
func (s SecretString) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			fmt.Fprint(f, s.GoString())
			return
		}
		fmt.Fprint(f, redacted)
	case 'q':
		fmt.Fprintf(f, "%q", redacted)
	default:
		fmt.Fprint(f, redacted)
	}
}

// MarshalJSON implements [encoding/json.Marshaler].
func (SecretString) MarshalJSON() ([]byte, error) {
	return json.Marshal(redacted)
}

// MarshalText implements [encoding.TextMarshaler].
func (SecretString) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// MarshalZerologObject implements [zerolog.LogObjectMarshaler].
func (s SecretString) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("set", !s.IsEmpty()).Str("value", redacted)
}
