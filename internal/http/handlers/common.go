package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendora/vendora-backend/internal/security"
	"github.com/vendora/vendora-backend/internal/storeconfig"
)

// getSubjectID extracts the caller identity from gin context.
func getSubjectID(c *gin.Context) string {
	return c.GetString("subjectID")
}

// getRole extracts the caller role from gin context.
func getRole(c *gin.Context) security.Role {
	value, ok := c.Get("role")
	if !ok {
		return ""
	}
	role, ok := value.(security.Role)
	if !ok {
		return ""
	}
	return role
}

// writeSettingsError maps store errors onto HTTP responses: validation
// failures are 400s, everything else is an infrastructure 500.
func writeSettingsError(c *gin.Context, err error) {
	var validationErr *storeconfig.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "settings store failed"})
}
