package middleware

import (
	"net/http"
	"strings"

	entity "service-market/internal/domain"
	repo "service-market/internal/repository/postgresql"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// AuthRequired resolves the opaque bearer token with a point lookup and
// stores the user in the request context. Accepts both "Token <key>"
// and "Bearer <key>" schemes.
func AuthRequired(tokens repo.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, tokens)
		if !ok {
			c.Abort()
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth authenticates when a valid token is present but lets the
// request continue anonymously otherwise, so public endpoints keep
// working even with a stale token.
func OptionalAuth(tokens repo.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := resolveUser(c, tokens); user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, tokens repo.TokenRepository) (*entity.User, bool) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return nil, true
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || (parts[0] != "Token" && parts[0] != "Bearer") {
		return nil, true
	}

	user, err := tokens.GetUserByKey(parts[1])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return nil, false
	}
	return user, true
}

// CurrentUser returns the authenticated user set by AuthRequired or
// OptionalAuth, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *entity.User {
	raw, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := raw.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
