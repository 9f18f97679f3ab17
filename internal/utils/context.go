package utils

import (
	"arts-market/internal/apperr"

	"github.com/gin-gonic/gin"
)

// CurrentUserID returns the authenticated user id set by the auth middleware.
func CurrentUserID(c *gin.Context) (string, error) {
	userID := c.GetString("user_id")
	if userID == "" {
		return "", apperr.New(apperr.Forbidden, "User not authenticated")
	}
	return userID, nil
}

// CurrentRole returns the role claim of the authenticated user, empty when absent.
func CurrentRole(c *gin.Context) string {
	return c.GetString("role")
}
