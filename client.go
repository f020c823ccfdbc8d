package xai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// DefaultUserAgent is sent with every request unless overridden with WithUserAgent.
const DefaultUserAgent = "xai-prompter"

// Client is a client for the xAI responses API.
//
// A Client holds no per-call state and is safe for concurrent use.
type Client struct {
	// HTTPClient is the HTTP client to use for requests.
	HTTPClient *http.Client

	// UserAgent is sent in the User-Agent header.
	UserAgent string

	// Logger receives diagnostics about each call. It never sees the API key.
	Logger zerolog.Logger
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithHTTPClient is a ClientOption that sets the HTTP client to use for requests.
//
// If the client is nil, then http.DefaultClient is used.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		if c == nil {
			c = http.DefaultClient
		}
		client.HTTPClient = c
	}
}

// WithUserAgent is a ClientOption that sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		client.UserAgent = ua
	}
}

// WithLogger is a ClientOption that sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = logger
	}
}

// NewClient returns a new Client. Without options it uses http.DefaultClient
// and logs nothing.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: http.DefaultClient,
		UserAgent:  DefaultUserAgent,
		Logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultClient = NewClient()

// Generate sends input to the responses API using a default Client.
//
// See [Client.Generate].
func Generate(ctx context.Context, input string, opts *Options) ([]string, error) {
	return defaultClient.Generate(ctx, input, opts)
}

// Generate sends input to the model described by opts with a single POST to
// {endpoint}/v1/responses and returns the assistant text segments of the
// response, in order. Segments are not joined.
//
// Errors are one of [*TransportError], [*DecodeError], or [*RemoteError].
// A non-2xx response without a recognizable error message is not an error:
// its body goes through [Extract] like any other, which usually yields an
// empty result.
//
// # Example
//
//	texts, _ := client.Generate(ctx, "Tell me a joke", xai.NewOptions(apiKey))
//
//	fmt.Print(strings.Join(texts, ""))
//
// https://docs.x.ai/docs/api-reference#create-new-response
func (c *Client) Generate(ctx context.Context, input string, opts *Options) ([]string, error) {
	if opts == nil {
		return nil, ErrNoOptions
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b, err := json.Marshal(BuildRequest(input, opts))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := opts.URL()

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	r.Header.Set("Authorization", "Bearer "+opts.APIKey.Expose())
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("User-Agent", c.userAgent())

	c.Logger.Debug().Str("url", url).Str("model", opts.Model).Msg("sending request")

	resp, err := c.httpClient().Do(r)
	if err != nil {
		c.Logger.Error().Err(err).Msg("HTTP request failed")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.Logger.Debug().Int("status", resp.StatusCode).Msg("received response")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error().Err(err).Msg("unable to read HTTP response body")
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !gjson.ValidBytes(body) || !utf8.Valid(body) {
		err := invalidJSON(body)
		c.Logger.Error().Err(err).Int("status", resp.StatusCode).Msg("unable to decode HTTP response body")
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	c.Logger.Debug().RawJSON("body", body).Msg("response body")

	root := gjson.ParseBytes(body)

	if !isSuccess(resp.StatusCode) {
		c.Logger.Error().Int("status", resp.StatusCode).Msg("received an error response")

		// {
		//   "code": "Client specified an invalid argument",
		//   "error": "Incorrect API key provided: fo***ar. You can obtain an API key from https://console.x.ai."
		// }
		if message := root.Get("error"); message.Type == gjson.String {
			remoteErr := &RemoteError{StatusCode: resp.StatusCode, Message: message.Str}
			if code := root.Get("code"); code.Type == gjson.String {
				remoteErr.Code = code.Str
			}
			return nil, remoteErr
		}
		if root.Type == gjson.String {
			return nil, &RemoteError{StatusCode: resp.StatusCode, Message: root.Str}
		}

		c.Logger.Warn().Int("status", resp.StatusCode).Msg("error response has no message, extracting output anyway")
	}

	return extract(root, c.Logger), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

var errInvalidJSON = errors.New("invalid JSON")

// invalidJSON describes why body is not valid JSON, falling back to a
// generic error when the decoder accepts what gjson rejected.
func invalidJSON(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", errInvalidJSON)
	}
	if !utf8.Valid(body) {
		return fmt.Errorf("%w: invalid UTF-8", errInvalidJSON)
	}
	var v json.RawMessage
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return errInvalidJSON
}
