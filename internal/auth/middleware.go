package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextPrincipal = "principal"
)

type errorBody struct {
	Message string `json:"message"`
}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the gin context.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Authorization header format must be Bearer {token}"})
			return
		}

		principal, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, ErrTokenExpired) {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: message})
			return
		}

		c.Set(ContextUserID, principal.UserID)
		c.Set(ContextUserRole, principal.Role)
		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// RequireRole lets through only callers holding one of roles.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "User not authenticated"})
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Message: "Only " + roleList(roles) + " can access this resource"})
	}
}

// PrincipalFrom returns the caller stored by Middleware.
func PrincipalFrom(c *gin.Context) (*models.Principal, bool) {
	value, exists := c.Get(ContextPrincipal)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*models.Principal)
	return principal, ok
}

func roleList(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, " or ")
}
