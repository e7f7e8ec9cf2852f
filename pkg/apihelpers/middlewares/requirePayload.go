package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePayload blocks requests that have no JSON payload attached
func RequirePayload() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			slog.Debug("RequirePayload Middleware: payload missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "payload missing"})
			return
		}
		if c.ContentType() != gin.MIMEJSON {
			slog.Debug("RequirePayload Middleware: unexpected content type", slog.String("contentType", c.ContentType()))
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": "payload must be json"})
			return
		}
		c.Next()
	}
}
