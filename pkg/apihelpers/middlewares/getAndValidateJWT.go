package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwthandling "github.com/himkwtn/expression-mongo/pkg/jwt-handling"
)

const (
	HeaderAuthorization = "Authorization"

	CtxKeyValidatedToken = "validatedToken"
)

// GetAndValidateManagementUserJWT rejects requests without a valid management
// user token and stores the parsed claims in the context.
func GetAndValidateManagementUserJWT(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		parsedToken, ok, err := jwthandling.ValidateManagementUserToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("token validation failed", slog.String("reason", errorReason(err)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
			return
		}
		c.Set(CtxKeyValidatedToken, parsedToken)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader(HeaderAuthorization)
	if header == "" {
		return "", errors.New("no Authorization header found")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errors.New("no token found in Authorization header")
	}
	return token, nil
}

func errorReason(err error) string {
	if err == nil {
		return "invalid token"
	}
	return err.Error()
}
