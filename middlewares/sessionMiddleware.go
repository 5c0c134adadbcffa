package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/epiceriemtl/epicerie_backend/models"
	"github.com/epiceriemtl/epicerie_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the opaque session token into the request
// context. Requests without a token pass through anonymous; handlers that
// need a user enforce it via RequireSession.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			auth := c.Request.Header.Get("Authorization")
			bearer := "Bearer "
			if strings.HasPrefix(auth, bearer) {
				token = auth[len(bearer):]
			}
		}
		if token == "" {
			c.Next()
			return
		}
		session, exists, err := models.GetSession(token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyToken, token)
		ctx = context.WithValue(ctx, utils.ContextKeyUserId, session.UserId)
		ctx = context.WithValue(ctx, utils.ContextKeyUsername, session.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSession rejects requests that did not present a valid session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIdFromContext(c.Request.Context()); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
