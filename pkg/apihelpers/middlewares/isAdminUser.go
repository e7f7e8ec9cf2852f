package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	jwthandling "github.com/himkwtn/expression-mongo/pkg/jwt-handling"
)

func IsAdminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get(CtxKeyValidatedToken)
		if !ok {
			slog.Warn("IsAdminUser: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.ManagementUserClaims)

		if !parsedToken.IsAdmin {
			slog.Warn("IsAdminUser Middleware: non admin user tried to access admin endpoint", slog.String("instanceID", parsedToken.InstanceID), slog.String("userID", parsedToken.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access to admin endpoint"})
			return
		}
		c.Next()
	}
}
