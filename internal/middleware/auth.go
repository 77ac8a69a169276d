package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/models"
	"github.com/eusluer/bosphorus-fellas-api/internal/repository"
	"github.com/eusluer/bosphorus-fellas-api/internal/security"
)

const claimsKey = "auth_claims"

// MemberSource is the slice of the member store the gate needs for the
// per-request active re-check.
type MemberSource interface {
	FindByID(ctx context.Context, id int64) (models.Member, error)
}

// Auth validates the bearer token and, for member tokens, re-checks the
// member's active flag on every request so a deactivation takes effect
// before the token expires. All token failures collapse to one 401.
func Auth(cfg *config.AppConfig, members MemberSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseToken(tokenStr, &cfg.Security)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if claims.Role == models.RoleMember {
			member, err := members.FindByID(c.Request.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrMemberNotFound) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
				return
			}
			if !member.Active {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account_inactive"})
				return
			}
		}

		c.Set(claimsKey, claims)

		c.Next()
	}
}

// ClaimsFrom returns the validated claims stored by Auth.
func ClaimsFrom(c *gin.Context) (*security.Claims, bool) {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*security.Claims)
	return claims, ok
}
