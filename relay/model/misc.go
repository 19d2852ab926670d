package model

// Usage is the token usage information attached to non-streaming responses.
// Counts are estimates when the engine does not report them natively.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    any    `json:"code,omitempty"`
	// RawError preserves the original internal error for diagnostics.
	// Omitted from JSON to avoid leaking internals.
	RawError error `json:"-"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}
