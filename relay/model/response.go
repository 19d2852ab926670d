package model

// Finish reasons reported in choices.
const (
	FinishReasonStop         = "stop"
	FinishReasonLength       = "length"
	FinishReasonFunctionCall = "function_call"
)

// Response object types.
const (
	ObjectChatCompletion      = "chat.completion"
	ObjectChatCompletionChunk = "chat.completion.chunk"
)

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// StreamChoice carries an incremental delta. FinishReason is null for every
// chunk except the terminal one.
type StreamChoice struct {
	Index        int          `json:"index"`
	Delta        DeltaMessage `json:"delta"`
	FinishReason *string      `json:"finish_reason"`
}

type ChatCompletionResponse struct {
	Id      string   `json:"id"`
	Model   string   `json:"model"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

type ChatCompletionStreamResponse struct {
	Id      string         `json:"id"`
	Model   string         `json:"model"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Choices []StreamChoice `json:"choices"`
}
