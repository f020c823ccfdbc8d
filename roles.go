package xai

// Role is the author of an output message, either “assistant”, “user”, or “system”.
//
// Only assistant messages contribute text to a [Generate] result.
type Role = string

const (
	// RoleAssistant is the model.
	RoleAssistant Role = "assistant"

	// RoleUser is the caller.
	RoleUser Role = "user"

	// RoleSystem carries instructions that ground the model.
	RoleSystem Role = "system"
)

// Output item and content types found in a response.
const (
	OutputTypeMessage   = "message"
	OutputTypeReasoning = "reasoning"

	ContentTypeOutputText = "output_text"
)
