package xai

import (
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Extract returns the text of every output_text content entry found in the
// assistant message chunks of a responses API body, in document order.
//
// Extract never fails: a body without an "output" list, or with chunks of
// an unexpected shape, yields an empty or partial result.
//
//	{
//	  "output": [
//	    {"type": "reasoning", "summary": [{"type": "summary_text", "text": "..."}]},
//	    {
//	      "type": "message",
//	      "role": "assistant",
//	      "content": [{"type": "output_text", "text": "Hello!"}]
//	    }
//	  ]
//	}
//
// yields ["Hello!"].
func Extract(body []byte) []string {
	return extract(gjson.ParseBytes(body), zerolog.Nop())
}

// ExtractResult is like [Extract] for an already parsed body.
func ExtractResult(body gjson.Result) []string {
	return extract(body, zerolog.Nop())
}

func extract(body gjson.Result, logger zerolog.Logger) []string {
	texts := []string{}

	output := body.Get("output")
	if !output.IsArray() {
		return texts
	}

	output.ForEach(func(_, chunk gjson.Result) bool {
		if !isString(chunk.Get("type"), OutputTypeMessage) {
			logger.Debug().Str("chunk", chunk.Raw).Msg("skipping non-message chunk in response")
			return true
		}
		if !isString(chunk.Get("role"), RoleAssistant) {
			logger.Debug().Str("chunk", chunk.Raw).Msg("skipping output chunk not from assistant")
			return true
		}

		if content := chunk.Get("content"); content.IsArray() {
			content.ForEach(func(_, entry gjson.Result) bool {
				if !isString(entry.Get("type"), ContentTypeOutputText) {
					logger.Debug().Str("content", entry.Raw).Msg("skipping non-text message content in response")
					return true
				}
				if text := entry.Get("text"); text.Type == gjson.String {
					texts = append(texts, text.Str)
				}
				return true
			})
		}

		if status := chunk.Get("status"); status.Type == gjson.String {
			logger.Debug().Str("status", status.Str).Msg("message chunk")
		}

		return true
	})

	return texts
}

// isString reports whether r is a JSON string equal to want. Numbers and
// other types never match, even if their textual form does.
func isString(r gjson.Result, want string) bool {
	return r.Type == gjson.String && r.Str == want
}
