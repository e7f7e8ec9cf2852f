package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	jwthandling "github.com/himkwtn/expression-mongo/pkg/jwt-handling"
	"github.com/himkwtn/expression-mongo/pkg/utils"
)

// IsInstanceIDAllowed checks the :instanceID route parameter against the
// configured instances. If a management token was validated before, its
// instance must match as well.
func IsInstanceIDAllowed(allowedInstanceIDs []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		instanceID := c.Param("instanceID")
		if !utils.ContainsString(allowedInstanceIDs, instanceID) {
			slog.Warn("instanceID not allowed", slog.String("instanceID", instanceID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "instanceID not allowed"})
			return
		}

		if tokenValue, ok := c.Get(CtxKeyValidatedToken); ok {
			token := tokenValue.(*jwthandling.ManagementUserClaims)
			if token.InstanceID != instanceID {
				slog.Warn("token issued for another instance", slog.String("instanceID", instanceID), slog.String("tokenInstanceID", token.InstanceID), slog.String("userID", token.Subject))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "instanceID not allowed"})
				return
			}
		}
		c.Next()
	}
}
