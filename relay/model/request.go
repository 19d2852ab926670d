package model

// GeneralChatRequest is the body of POST /v1/chat/completions. Sampling
// fields are pointers so absent values do not override engine defaults.
type GeneralChatRequest struct {
	Model       string     `json:"model"`
	Messages    []Message  `json:"messages"`
	Functions   []Function `json:"functions,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	TopP        *float64   `json:"top_p,omitempty"`
	TopK        *int       `json:"top_k,omitempty"`
	MaxLength   *int       `json:"max_length,omitempty"`
	Stream      bool       `json:"stream,omitempty"`
	Stop        []string   `json:"stop,omitempty"`
}
