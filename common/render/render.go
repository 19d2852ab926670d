package render

import (
	"encoding/json"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/common"
)

// StringData writes one SSE data line and flushes it to the client.
func StringData(c *gin.Context, str string) {
	c.Render(-1, common.CustomEvent{Data: str})
	c.Writer.Flush()
}

// ObjectData marshals the object as JSON and writes it as one SSE data line.
func ObjectData(c *gin.Context, object any) error {
	jsonData, err := json.Marshal(object)
	if err != nil {
		return errors.Wrap(err, "marshal stream chunk")
	}
	StringData(c, "data: "+string(jsonData))
	return nil
}

// Done writes the terminal [DONE] sentinel.
func Done(c *gin.Context) {
	StringData(c, "data: [DONE]")
}
