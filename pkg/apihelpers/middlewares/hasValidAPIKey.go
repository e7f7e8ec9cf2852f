package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAPIKey = "X-API-Key"

	CtxKeyAPIClient = "apiClient"
)

// APIClient is a consumer of the read endpoints, identified by its key.
type APIClient struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
}

// HasValidAPIKey accepts requests whose X-API-Key header matches one of the
// clients and stores the client name in the context.
func HasValidAPIKey(clients []APIClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)
		if key == "" {
			slog.Warn("A valid API key missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "A valid API key missing"})
			return
		}

		for _, client := range clients {
			if client.Key == "" {
				continue
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(client.Key)) == 1 {
				c.Set(CtxKeyAPIClient, client.Name)
				c.Next()
				return
			}
		}

		slog.Warn("A valid API key missing", slog.String("clientIP", c.ClientIP()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "A valid API key missing"})
	}
}
