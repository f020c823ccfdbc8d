package main

import "errors"

// Exit codes, from sysexits.h.
const (
	exOK      = 0
	exFailure = 1
	exConfig  = 78
)

// configError marks errors caused by missing or unreadable configuration,
// which exit with exConfig.
type configError struct {
	err error
}

func (e *configError) Error() string {
	return e.err.Error()
}

func (e *configError) Unwrap() error {
	return e.err
}

func exitCode(err error) int {
	if err == nil {
		return exOK
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return exConfig
	}
	return exFailure
}
