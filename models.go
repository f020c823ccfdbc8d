package xai

/*

$ curl -s https://api.x.ai/v1/models -H "Authorization: Bearer $XAI_API_KEY" | jq -r '.data[].id'

grok-2-1212
grok-2-vision-1212
grok-3
grok-3-mini
grok-4-0709
grok-code-fast-1

*/

// Model identifiers accepted by the responses API.
const (
	ModelGrok3         = "grok-3"
	ModelGrok3Mini     = "grok-3-mini"
	ModelGrok4         = "grok-4-0709"
	ModelGrokCodeFast1 = "grok-code-fast-1"
)

// DefaultModel is used when no model is configured.
const DefaultModel = ModelGrok3Mini
