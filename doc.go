// Package xai implements a minimal client for the xAI responses API.
//
// A single call to [Generate] (or [Client.Generate]) sends one prompt to
// the remote model and returns the assistant-authored text segments from
// the response, in document order:
//
//	opts := xai.NewOptions(os.Getenv("XAI_API_KEY"), xai.WithMaxTokens(256))
//
//	texts, err := xai.Generate(ctx, "Hello!", opts)
//	if err != nil {
//		return err
//	}
//
//	for _, text := range texts {
//		fmt.Print(text)
//	}
//
// The client does not stream, retry, or rate limit. Callers that need any of
// those can wrap the [net/http.Client] given to [WithHTTPClient].
//
// https://docs.x.ai/docs/api-reference#create-new-response
package xai
