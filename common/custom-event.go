package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CustomEvent renders a single pre-formatted server-sent event line. The
// Data field must already carry the "data: " prefix; Render appends the
// event terminator.
type CustomEvent struct {
	Data string
}

var sseContentType = []string{"text/event-stream"}

func (e CustomEvent) Render(w http.ResponseWriter) error {
	e.WriteContentType(w)
	_, err := w.Write([]byte(e.Data + "\n\n"))
	return err
}

func (e CustomEvent) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = sseContentType
	}
}

// SetEventStreamHeaders prepares the response for server-sent events.
// Transfer-Encoding chunked keeps intermediaries from buffering the stream.
func SetEventStreamHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
}
