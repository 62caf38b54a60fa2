package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vendora/vendora-backend/internal/override"
)

// OverrideHandler serves the administrator override endpoints.
type OverrideHandler struct {
	manager *override.Manager // Override mutation path.
}

// NewOverrideHandler constructs an override handler.
func NewOverrideHandler(manager *override.Manager) *OverrideHandler {
	return &OverrideHandler{manager: manager}
}

// Apply sets admin override fields on a seller's store.
func (h *OverrideHandler) Apply(c *gin.Context) {
	sellerID := strings.TrimSpace(c.Param("id"))
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller id is required"})
		return
	}

	var patch override.Patch
	if errBind := c.ShouldBindJSON(&patch); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	patch.AdminID = getSubjectID(c)

	settings, err := h.manager.Apply(c.Request.Context(), sellerID, patch)
	if err != nil {
		writeSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Remove clears all admin override fields on a seller's store.
func (h *OverrideHandler) Remove(c *gin.Context) {
	sellerID := strings.TrimSpace(c.Param("id"))
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller id is required"})
		return
	}

	settings, err := h.manager.Remove(c.Request.Context(), sellerID)
	if err != nil {
		writeSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
