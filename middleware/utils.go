package middleware

import (
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/common/helper"
	"github.com/modelgate/modelgate/relay/model"
)

// AbortWithError aborts the request with an OpenAI-shaped error body. The
// request id is appended to the message so clients can report it.
func AbortWithError(c *gin.Context, statusCode int, errType string, err error) {
	logger := gmw.GetLogger(c)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("abort request",
			zap.Int("status_code", statusCode),
			zap.Error(err))
	} else {
		logger.Warn("abort request",
			zap.Int("status_code", statusCode),
			zap.Error(err))
	}

	c.JSON(statusCode, model.ErrorResponse{Error: model.Error{
		Message:  helper.MessageWithRequestId(err.Error(), c.GetString(helper.RequestIdKey)),
		Type:     errType,
		RawError: err,
	}})
	c.Abort()
}
