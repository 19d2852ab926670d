// Package router wires the HTTP surface: the OpenAI-compatible API plus
// liveness probing.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/common/config"
	"github.com/modelgate/modelgate/common/graceful"
	"github.com/modelgate/modelgate/controller"
	"github.com/modelgate/modelgate/middleware"
)

// SetRouter registers all routes on the server.
func SetRouter(server *gin.Engine) {
	server.GET("/health", func(c *gin.Context) {
		if graceful.IsDraining() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "draining"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := server.Group("/v1")
	v1.Use(middleware.BasicAuth(config.APIAuth))
	v1.Use(middleware.RelayPanicRecover())
	{
		v1.GET("/models", controller.ListModels)
		v1.POST("/chat/completions", controller.ChatCompletions)
	}
}
