package common

import (
	"bytes"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/common/ctxkey"
)

// GetRequestBody returns the raw request body, reading it at most once and
// caching it on the context so later consumers (handlers, panic recovery)
// see the same bytes.
func GetRequestBody(c *gin.Context) ([]byte, error) {
	if body, ok := c.Get(ctxkey.RequestBody); ok {
		return body.([]byte), nil
	}
	requestBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}
	_ = c.Request.Body.Close()
	c.Set(ctxkey.RequestBody, requestBody)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
	return requestBody, nil
}
