package xai_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/picatz/xai"
	"github.com/rs/zerolog"
	"github.com/shoenig/test/must"
)

const testAPIKey = "xai-test-secret-key"

// capturedRequest is what the fake API saw for a single call.
type capturedRequest struct {
	Method    string
	Path      string
	Header    http.Header
	Body      map[string]any
	RawBody   []byte
	UserAgent string
}

// fakeAPI starts an httptest server that records each request and replies
// with the given status and body.
func fakeAPI(t *testing.T, status int, body string) (*httptest.Server, func() capturedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		last capturedRequest
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Errorf("unmarshal request body: %v", err)
		}

		mu.Lock()
		last = capturedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Header:    r.Header.Clone(),
			Body:      decoded,
			RawBody:   raw,
			UserAgent: r.UserAgent(),
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func testOptions(endpoint string, opts ...xai.OptionsOption) *xai.Options {
	return xai.NewOptions(testAPIKey, append([]xai.OptionsOption{xai.WithEndpoint(endpoint)}, opts...)...)
}

// exampleResponse is a trimmed down real response from the API, with one
// reasoning chunk and one assistant message.
const exampleResponse = `{
  "created_at": 1758188599,
  "id": "resp_01",
  "incomplete_details": null,
  "max_output_tokens": null,
  "metadata": {},
  "model": "grok-3-mini",
  "object": "response",
  "output": [
    {
      "id": "rs_01",
      "status": "completed",
      "summary": [
        {
          "text": "The user greeted me.",
          "type": "summary_text"
        }
      ],
      "type": "reasoning"
    },
    {
      "content": [
        {
          "annotations": [],
          "logprobs": null,
          "text": "Hello!",
          "type": "output_text"
        }
      ],
      "id": "msg_01",
      "role": "assistant",
      "status": "completed",
      "type": "message"
    }
  ],
  "status": "completed",
  "usage": {
    "input_tokens": 8,
    "output_tokens": 199,
    "total_tokens": 207
  }
}`

func TestClientGenerate(t *testing.T) {
	srv, last := fakeAPI(t, http.StatusOK, exampleResponse)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	texts, err := client.Generate(t.Context(), "Hi there", testOptions(srv.URL))
	must.NoError(t, err)
	must.Eq(t, []string{"Hello!"}, texts)

	req := last()
	must.Eq(t, http.MethodPost, req.Method)
	must.Eq(t, "/v1/responses", req.Path)
	must.Eq(t, "Bearer "+testAPIKey, req.Header.Get("Authorization"))
	must.Eq(t, "application/json", req.Header.Get("Content-Type"))
	must.Eq(t, xai.DefaultUserAgent, req.UserAgent)
	must.Eq(t, xai.DefaultModel, req.Body["model"])
	must.Eq(t, "Hi there", req.Body["input"])
	must.MapNotContainsKey(t, req.Body, "max_output_tokens")
	must.StrNotContains(t, string(req.RawBody), "max_output_tokens")
}

func TestClientGenerate_maxTokens(t *testing.T) {
	srv, last := fakeAPI(t, http.StatusOK, exampleResponse)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	_, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL, xai.WithMaxTokens(64), xai.WithModel(xai.ModelGrok4)))
	must.NoError(t, err)

	req := last()
	must.Eq(t, xai.ModelGrok4, req.Body["model"])
	// JSON numbers decode to float64.
	must.Eq[any](t, float64(64), req.Body["max_output_tokens"])
}

func TestClientGenerate_trailingSlashEndpoint(t *testing.T) {
	srv, last := fakeAPI(t, http.StatusOK, exampleResponse)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()), xai.WithUserAgent("custom-agent"))

	_, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL+"/"))
	must.NoError(t, err)
	must.Eq(t, "/v1/responses", last().Path)
	must.Eq(t, "custom-agent", last().UserAgent)
}

func TestClientGenerate_multipleSegments(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusOK, `{
		"output": [
			{"type": "message", "role": "assistant", "content": [
				{"type": "output_text", "text": "one"},
				{"type": "refusal", "refusal": "nope"},
				{"type": "output_text", "text": "two"}
			]},
			{"type": "message", "role": "user", "content": [
				{"type": "output_text", "text": "not mine"}
			]},
			{"type": "message", "role": "assistant", "content": [
				{"type": "output_text", "text": "three"}
			]}
		]
	}`)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	texts, err := client.Generate(t.Context(), "count", testOptions(srv.URL))
	must.NoError(t, err)
	must.Eq(t, []string{"one", "two", "three"}, texts)
}

func TestClientGenerate_remoteErrorObject(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusBadRequest, `{
		"code": "Client specified an invalid argument",
		"error": "Incorrect API key provided: fo***ar"
	}`)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	texts, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL))
	must.Nil(t, texts)
	must.EqError(t, err, "Incorrect API key provided: fo***ar")

	var remoteErr *xai.RemoteError
	must.ErrorAs(t, err, &remoteErr)
	must.Eq(t, http.StatusBadRequest, remoteErr.StatusCode)
	must.Eq(t, "Client specified an invalid argument", remoteErr.Code)
	must.Eq(t, "Incorrect API key provided: fo***ar", remoteErr.Message)
}

func TestClientGenerate_remoteErrorString(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusTooManyRequests, `"rate limited"`)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	_, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL))

	var remoteErr *xai.RemoteError
	must.ErrorAs(t, err, &remoteErr)
	must.Eq(t, "rate limited", remoteErr.Message)
	must.Eq(t, http.StatusTooManyRequests, remoteErr.StatusCode)
	must.Eq(t, "", remoteErr.Code)
}

func TestClientGenerate_errorStatusWithoutMessage(t *testing.T) {
	// An error status whose body has no usable message falls through to
	// extraction instead of failing.
	srv, _ := fakeAPI(t, http.StatusInternalServerError, `{"error": {"message": "nested"}}`)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	texts, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL))
	must.NoError(t, err)
	must.SliceEmpty(t, texts)
}

func TestClientGenerate_errorStatusWithOutput(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusServiceUnavailable, exampleResponse)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

	texts, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL))
	must.NoError(t, err)
	must.Eq(t, []string{"Hello!"}, texts)
}

func TestClientGenerate_decodeError(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
	}{
		{name: "html", status: http.StatusOK, body: "<html>oops</html>"},
		{name: "truncated", status: http.StatusOK, body: `{"output": [`},
		{name: "empty", status: http.StatusOK, body: ""},
		{name: "error status", status: http.StatusBadGateway, body: "Bad Gateway"},
		{name: "invalid utf-8", status: http.StatusOK, body: `{"output": [{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "a` + "\xff" + `b"}]}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := fakeAPI(t, tc.status, tc.body)

			client := xai.NewClient(xai.WithHTTPClient(srv.Client()))

			_, err := client.Generate(t.Context(), "Hi", testOptions(srv.URL))

			var decodeErr *xai.DecodeError
			must.ErrorAs(t, err, &decodeErr)
			must.Eq(t, tc.status, decodeErr.StatusCode)
		})
	}
}

func TestClientGenerate_transportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := xai.NewClient(xai.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))

	_, err := client.Generate(t.Context(), "Hi", testOptions(url))

	var transportErr *xai.TransportError
	must.ErrorAs(t, err, &transportErr)
	must.NotNil(t, errors.Unwrap(err))
	must.StrNotContains(t, err.Error(), testAPIKey)
}

func TestClientGenerate_invalidOptions(t *testing.T) {
	client := xai.NewClient()

	_, err := client.Generate(t.Context(), "Hi", nil)
	must.ErrorIs(t, err, xai.ErrNoOptions)

	_, err = client.Generate(t.Context(), "Hi", &xai.Options{Model: "m"})
	must.ErrorIs(t, err, xai.ErrEmptyEndpoint)

	_, err = client.Generate(t.Context(), "Hi", &xai.Options{Endpoint: "http://localhost"})
	must.ErrorIs(t, err, xai.ErrEmptyModel)

	_, err = client.Generate(t.Context(), "Hi", testOptions("http://localhost", xai.WithMaxTokens(0)))
	must.ErrorIs(t, err, xai.ErrInvalidMaxTokens)
}

func TestClientGenerate_logsNeverContainAPIKey(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusUnauthorized, `{"error": "Incorrect API key provided: xa***ey"}`)

	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.TraceLevel)

	client := xai.NewClient(xai.WithHTTPClient(srv.Client()), xai.WithLogger(logger))

	opts := testOptions(srv.URL)
	logger.Debug().Interface("options", opts).Msg("options")
	logger.Debug().Object("api_key", opts.APIKey).Msg("key")

	_, err := client.Generate(t.Context(), "Hi", opts)
	must.Error(t, err)

	must.StrContains(t, logs.String(), "received an error response")
	must.StrNotContains(t, logs.String(), testAPIKey)
}

func TestGenerate_packageLevel(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusOK, exampleResponse)

	texts, err := xai.Generate(t.Context(), "Hi", testOptions(srv.URL))
	must.NoError(t, err)
	must.Eq(t, []string{"Hello!"}, texts)
}

// TestGenerate_live calls the real API, and is skipped unless XAI_API_KEY is set.
func TestGenerate_live(t *testing.T) {
	apiKey := os.Getenv("XAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping test because XAI_API_KEY is not set")
	}

	client := xai.NewClient(xai.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}))

	texts, err := client.Generate(t.Context(), "Reply with the single word: pong", xai.NewOptions(apiKey, xai.WithMaxTokens(256)))
	must.NoError(t, err)
	must.SliceNotEmpty(t, texts)

	t.Logf("Response: %q", strings.Join(texts, ""))
}
