package manifest

import "github.com/picatz/xai"

// Variable names used by the xai module.
const (
	VarAPIKey    = "api-key"
	VarEndpoint  = "endpoint"
	VarModel     = "model"
	VarMaxTokens = "max-tokens"
	VarHistory   = "history"
)

func ptr[T any](v T) *T {
	return &v
}

// Default returns the built-in manifest for the xai module, written by
// "xai-prompter manifest init".
func Default() *Manifest {
	m := &Manifest{
		Name:    "xai",
		Label:   "xAI",
		Summary: "Prompts large language models through the xAI responses API.",
		Links: []string{
			"https://github.com/picatz/xai",
			"https://docs.x.ai/docs/api-reference",
		},
	}
	m.Provides.Programs = []string{"xai-prompter"}
	m.Config.Variables = []Variable{
		{
			Name:        VarAPIKey,
			Description: "The API key used to authenticate with xAI",
			Environment: "XAI_API_KEY",
		},
		{
			Name:         VarEndpoint,
			Description:  "The base URL of the xAI API",
			Environment:  "XAI_API_ENDPOINT",
			DefaultValue: ptr(xai.DefaultEndpoint),
		},
		{
			Name:         VarModel,
			Description:  "The model used to generate responses",
			Environment:  "XAI_MODEL",
			DefaultValue: ptr(xai.DefaultModel),
		},
		{
			Name:         VarMaxTokens,
			Description:  "Upper bound on generated tokens; empty means no bound",
			Environment:  "XAI_MAX_TOKENS",
			DefaultValue: ptr(""),
		},
		{
			Name:         VarHistory,
			Description:  "Directory where prompt/response exchanges are archived; empty disables the archive",
			Environment:  "XAI_HISTORY",
			DefaultValue: ptr(""),
		},
	}
	return m
}
