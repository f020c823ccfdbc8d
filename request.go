package xai

// Request is the JSON payload sent to the responses endpoint.
//
// https://docs.x.ai/docs/api-reference#create-new-response
type Request struct {
	// Model identifies the model used to generate the response.
	Model string `json:"model"`

	// Input is the prompt text.
	Input string `json:"input"`

	// MaxOutputTokens bounds the generated output. The key is left out of
	// the JSON object entirely when nil.
	MaxOutputTokens *int `json:"max_output_tokens,omitempty"`
}

// BuildRequest builds the request payload for input using opts.
func BuildRequest(input string, opts *Options) Request {
	req := Request{
		Model: opts.Model,
		Input: input,
	}

	if opts.MaxTokens != nil {
		n := *opts.MaxTokens
		req.MaxOutputTokens = &n
	}

	return req
}
