package model

// Recognized chat roles. Any other role is rejected during compilation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

// Message is one turn of an OpenAI-compatible chat transcript. Content may
// arrive as JSON null for assistant turns that only carry a function call;
// it decodes to the empty string.
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// FunctionCall is an assistant-issued tool invocation. Arguments is the raw
// argument text as emitted by the model, usually but not necessarily JSON.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// DeltaMessage is the incremental message payload of a streaming chunk.
type DeltaMessage struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}
