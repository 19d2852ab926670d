package controller

import (
	"sync"

	"github.com/Laisky/zap"
	"github.com/pkoukk/tiktoken-go"

	"github.com/modelgate/modelgate/common/logger"
)

var (
	tokenEncoderOnce sync.Once
	tokenEncoder     *tiktoken.Tiktoken
)

func getTokenEncoder() *tiktoken.Tiktoken {
	tokenEncoderOnce.Do(func() {
		encoder, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
		if err != nil {
			logger.Logger.Warn("load token encoder, usage will be estimated",
				zap.Error(err))
			return
		}
		tokenEncoder = encoder
	})
	return tokenEncoder
}

// countTokens approximates token usage for the usage block of blocking
// responses. The engine does not report counts, so responses are re-tokenized
// here; when the encoder is unavailable a bytes/4 estimate is used instead.
func countTokens(text string) int {
	if encoder := getTokenEncoder(); encoder != nil {
		return len(encoder.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}
