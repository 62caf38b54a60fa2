package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/vendora/vendora-backend/internal/cache"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/security"
	"github.com/vendora/vendora-backend/internal/storeconfig"
)

// SettingsHandler serves seller self-service storefront settings.
type SettingsHandler struct {
	store *storeconfig.Store // Durable settings store.
	cache cache.Client       // Settings cache, invalidated after writes.
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(store *storeconfig.Store, cacheClient cache.Client) *SettingsHandler {
	return &SettingsHandler{store: store, cache: cacheClient}
}

// Get returns the seller's settings, creating defaults on first access.
func (h *SettingsHandler) Get(c *gin.Context) {
	sellerID, ok := h.resolveSellerID(c)
	if !ok {
		return
	}

	settings, err := h.store.GetOrCreate(c.Request.Context(), sellerID)
	if err != nil {
		writeSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update applies a partial update to one named settings section.
func (h *SettingsHandler) Update(c *gin.Context) {
	sellerID, ok := h.resolveSellerID(c)
	if !ok {
		return
	}

	section := strings.TrimSpace(c.Param("section"))
	settings, err := h.updateSection(c, sellerID, section)
	if err != nil {
		writeSettingsError(c, err)
		return
	}
	if settings == nil {
		// updateSection already wrote the response.
		return
	}

	h.invalidate(c, sellerID)
	c.JSON(http.StatusOK, settings)
}

// updateSection binds and dispatches the per-section payload. A nil
// settings result with nil error means the response was written here.
func (h *SettingsHandler) updateSection(c *gin.Context, sellerID, section string) (*models.StoreSettings, error) {
	ctx := c.Request.Context()
	switch section {
	case "basic":
		var patch storeconfig.BasicUpdate
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateBasic(ctx, sellerID, patch)
	case "business-hours":
		var patch models.BusinessWeek
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateBusinessHours(ctx, sellerID, patch)
	case "maintenance":
		var patch storeconfig.MaintenanceUpdate
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateMaintenance(ctx, sellerID, patch)
	case "return":
		var patch storeconfig.ReturnUpdate
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateReturnSettings(ctx, sellerID, patch)
	case "refund":
		var patch storeconfig.RefundUpdate
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateRefundRules(ctx, sellerID, patch)
	case "cancellation":
		var patch storeconfig.CancellationUpdate
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateCancellationRules(ctx, sellerID, patch)
	case "cod":
		var patch storeconfig.CODUpdate
		if errBind := c.ShouldBindJSON(&patch); errBind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return nil, nil
		}
		return h.store.UpdateCODSettings(ctx, sellerID, patch)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown settings section"})
		return nil, nil
	}
}

// resolveSellerID reads the path seller ID and enforces that sellers
// only touch their own store. Admins may touch any store.
func (h *SettingsHandler) resolveSellerID(c *gin.Context) (string, bool) {
	sellerID := strings.TrimSpace(c.Param("id"))
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller id is required"})
		return "", false
	}
	if getRole(c) != security.RoleAdmin && getSubjectID(c) != sellerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return "", false
	}
	return sellerID, true
}

// invalidate drops the seller's cached settings after a write.
func (h *SettingsHandler) invalidate(c *gin.Context, sellerID string) {
	if err := h.cache.Invalidate(c.Request.Context(), cache.SettingsKey(sellerID)); err != nil {
		log.WithError(err).WithField("seller_id", sellerID).Warn("settings cache invalidation failed")
	}
}
