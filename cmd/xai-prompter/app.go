package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/picatz/xai"
	"github.com/picatz/xai/internal/manifest"
)

// moduleName is the manifest the prompter reads its configuration from.
const moduleName = "xai"

// app holds what the commands need from outside the process.
type app struct {
	// provider returns the configuration source.
	provider func() (manifest.Provider, error)

	// httpClient is used for every API call.
	httpClient *http.Client
}

func defaultApp() *app {
	return &app{
		provider: func() (manifest.Provider, error) {
			return manifest.Load(moduleName)
		},
		httpClient: http.DefaultClient,
	}
}

// config is everything read from the provider for a generate call.
type config struct {
	apiKey     string
	endpoint   string
	model      string
	maxTokens  *int
	historyDir string
}

// loadProvider returns the configuration source, as a configError on failure.
func (a *app) loadProvider() (manifest.Provider, error) {
	p, err := a.provider()
	if err != nil {
		return nil, &configError{fmt.Errorf("failed to read module manifest: %w (run \"xai-prompter manifest init\" to create one)", err)}
	}
	return p, nil
}

// loadConfig reads the required api-key, endpoint, and model variables, and
// the optional max-tokens and history variables.
func loadConfig(p manifest.Provider) (*config, error) {
	cfg := &config{}

	for _, v := range []struct {
		name string
		dst  *string
		desc string
	}{
		{manifest.VarAPIKey, &cfg.apiKey, "API key"},
		{manifest.VarEndpoint, &cfg.endpoint, "endpoint"},
		{manifest.VarModel, &cfg.model, "model"},
	} {
		value, err := p.Variable(v.name)
		if err != nil {
			return nil, &configError{fmt.Errorf("failed to read configured %s: %w", v.desc, err)}
		}
		*v.dst = value
	}

	maxTokens, err := optionalVariable(p, manifest.VarMaxTokens)
	if err != nil {
		return nil, err
	}
	if maxTokens != "" {
		n, err := strconv.Atoi(maxTokens)
		if err != nil || n <= 0 {
			return nil, &configError{fmt.Errorf("configured max tokens %q is not a positive integer", maxTokens)}
		}
		cfg.maxTokens = &n
	}

	cfg.historyDir, err = optionalVariable(p, manifest.VarHistory)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// optionalVariable returns "" for variables that are unset or not declared.
func optionalVariable(p manifest.Provider, name string) (string, error) {
	value, err := p.Variable(name)
	switch {
	case err == nil:
		return strings.TrimSpace(value), nil
	case isUnset(err):
		return "", nil
	default:
		return "", &configError{fmt.Errorf("failed to read configured %s: %w", name, err)}
	}
}

func (c *config) options() *xai.Options {
	opts := xai.NewOptions(c.apiKey, xai.WithEndpoint(c.endpoint), xai.WithModel(c.model))
	if c.maxTokens != nil {
		opts.MaxTokens = c.maxTokens
	}
	return opts
}

func isUnset(err error) bool {
	return errors.Is(err, manifest.ErrNotConfigured) || errors.Is(err, manifest.ErrUnknownVariable)
}
