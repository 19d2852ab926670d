package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BasicAuth guards the API with HTTP basic auth. credentials is the
// "user:password" pair; an empty value yields a no-op middleware.
func BasicAuth(credentials string) gin.HandlerFunc {
	if credentials == "" {
		return func(c *gin.Context) { c.Next() }
	}
	required := base64.StdEncoding.EncodeToString([]byte(credentials))

	return func(c *gin.Context) {
		authorization := c.GetHeader("Authorization")
		if authorization != "" {
			fields := strings.Fields(authorization)
			if len(fields) == 2 &&
				subtle.ConstantTimeCompare([]byte(fields[1]), []byte(required)) == 1 {
				c.Next()
				return
			}
		}

		c.Header("WWW-Authenticate", "Basic")
		c.AbortWithStatus(http.StatusUnauthorized)
	}
}
