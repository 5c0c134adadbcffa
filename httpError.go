package main

import (
	"net/http"

	"github.com/epiceriemtl/epicerie_backend/utils"
	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged and answered opaquely.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case utils.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case utils.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case utils.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// sessionUserId reads the authenticated user from the request context.
// RequireSession guarantees it is present on protected routes.
func sessionUserId(c *gin.Context) (int, bool) {
	return utils.GetUserIdFromContext(c.Request.Context())
}
