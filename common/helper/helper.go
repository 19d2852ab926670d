package helper

import (
	"fmt"
	"time"

	"github.com/modelgate/modelgate/common/random"
)

const RequestIdKey = "X-Modelgate-Request-Id"

// GetTimestamp get current timestamp in seconds
func GetTimestamp() int64 {
	return time.Now().Unix()
}

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

func GenRequestID() string {
	return GetTimeString() + random.GetRandomNumberString(8)
}

// GenChatCompletionID generates a response id in the chatcmpl-* convention.
func GenChatCompletionID() string {
	return "chatcmpl-" + random.GetUUID()
}

func MessageWithRequestId(message string, id string) string {
	return fmt.Sprintf("%s (request id: %s)", message, id)
}
