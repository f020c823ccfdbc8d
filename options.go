package xai

import (
	"strings"
)

const (
	// DefaultEndpoint is the base URL of the xAI API.
	DefaultEndpoint = "https://api.x.ai"

	// ResponsesPath is appended to the endpoint to form the request URL.
	ResponsesPath = "/v1/responses"
)

// Options configure a single call to [Client.Generate].
//
// Options are treated as immutable once built; the same value can be shared
// between goroutines.
type Options struct {
	// Endpoint is the base URL of the API, without the /v1/responses suffix.
	//
	// Defaults to DefaultEndpoint when built with NewOptions.
	Endpoint string `json:"endpoint"`

	// Model identifies the model used to generate the response.
	//
	// Defaults to DefaultModel when built with NewOptions.
	Model string `json:"model"`

	// MaxTokens is an upper bound for the number of tokens the model can
	// generate, including reasoning tokens. When nil, max_output_tokens is
	// left out of the request entirely.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// APIKey is sent as a bearer token. It is never logged.
	APIKey SecretString `json:"api_key"`
}

// OptionsOption is a function that configures Options.
type OptionsOption func(*Options)

// WithEndpoint sets the API base URL. Empty values keep the default.
func WithEndpoint(endpoint string) OptionsOption {
	return func(o *Options) {
		if endpoint != "" {
			o.Endpoint = endpoint
		}
	}
}

// WithModel sets the model identifier. Empty values keep the default.
func WithModel(model string) OptionsOption {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithMaxTokens bounds the length of the generated output.
func WithMaxTokens(n int) OptionsOption {
	return func(o *Options) {
		o.MaxTokens = &n
	}
}

// NewOptions returns Options for the given API key, with the default
// endpoint and model unless overridden.
//
// # Example
//
//	opts := xai.NewOptions(os.Getenv("XAI_API_KEY"), xai.WithModel(xai.ModelGrok4))
func NewOptions(apiKey string, opts ...OptionsOption) *Options {
	o := &Options{
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
		APIKey:   NewSecretString(apiKey),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// URL returns the full request URL, {endpoint}/v1/responses.
func (o *Options) URL() string {
	return strings.TrimRight(o.Endpoint, "/") + ResponsesPath
}

// Validate reports whether the options can be used to build a request.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Endpoint) == "" {
		return ErrEmptyEndpoint
	}
	if strings.TrimSpace(o.Model) == "" {
		return ErrEmptyModel
	}
	if o.MaxTokens != nil && *o.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}
	return nil
}
