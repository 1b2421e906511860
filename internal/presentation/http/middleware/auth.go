package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/response"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

// AuthMiddleware validates the Bearer token and puts the operator
// identity on the request context
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_email", claims.Email)

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, also
// accepting it as an access_token query parameter for EventSource
// clients that cannot set headers
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], true
		}
		return "", false
	}

	if token := c.Query("access_token"); token != "" {
		return token, true
	}
	return "", false
}
