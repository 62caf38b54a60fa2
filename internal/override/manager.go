// Package override is the administrator-only mutation path for the
// admission override fields consumed with priority by the evaluator.
package override

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vendora/vendora-backend/internal/cache"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/storeconfig"
)

// Patch describes an override application request.
type Patch struct {
	ForceStoreOpen      *bool  `json:"force_store_open"`      // Optional store-open bypass.
	ForceCodEnabled     *bool  `json:"force_cod_enabled"`     // Optional COD enable.
	OverrideMaxQuantity *int   `json:"override_max_quantity"` // Optional quantity cap replacement.
	Reason              string `json:"reason"`                // Required audit reason.
	AdminID             string `json:"-"`                     // Acting administrator, from auth context.
}

// Manager applies and removes admin overrides, keeping the settings
// cache invalidated after every successful write.
type Manager struct {
	store *storeconfig.Store
	cache cache.Client
}

// NewManager constructs an override manager.
func NewManager(store *storeconfig.Store, cacheClient cache.Client) *Manager {
	return &Manager{store: store, cache: cacheClient}
}

// Apply persists the override fields, stamping the acting admin and
// time. A non-empty reason is required.
func (m *Manager) Apply(ctx context.Context, sellerID string, patch Patch) (*models.StoreSettings, error) {
	reason := strings.TrimSpace(patch.Reason)
	if reason == "" {
		return nil, &storeconfig.ValidationError{Field: "overrides.reason", Message: "must not be empty"}
	}
	if patch.ForceStoreOpen == nil && patch.ForceCodEnabled == nil && patch.OverrideMaxQuantity == nil {
		return nil, &storeconfig.ValidationError{Field: "overrides", Message: "at least one override field is required"}
	}

	now := time.Now().UTC()
	overrides := models.AdminOverrides{
		ForceStoreOpen:      patch.ForceStoreOpen,
		ForceCodEnabled:     patch.ForceCodEnabled,
		OverrideMaxQuantity: patch.OverrideMaxQuantity,
		OverrideReason:      reason,
		OverriddenBy:        patch.AdminID,
		OverriddenAt:        &now,
	}

	settings, err := m.store.SetOverrides(ctx, sellerID, overrides)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"seller_id": sellerID,
		"admin_id":  patch.AdminID,
		"reason":    reason,
	}).Info("admin overrides applied")

	m.invalidate(ctx, sellerID)
	return settings, nil
}

// Remove clears every override field in one write.
func (m *Manager) Remove(ctx context.Context, sellerID string) (*models.StoreSettings, error) {
	settings, err := m.store.ClearOverrides(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	log.WithField("seller_id", sellerID).Info("admin overrides removed")

	m.invalidate(ctx, sellerID)
	return settings, nil
}

// invalidate drops the seller's cached settings. Invalidation is
// best-effort: the write already succeeded and the TTL bounds any
// staleness a failed invalidation leaves behind.
func (m *Manager) invalidate(ctx context.Context, sellerID string) {
	if err := m.cache.Invalidate(ctx, cache.SettingsKey(sellerID)); err != nil {
		log.WithError(err).WithField("seller_id", sellerID).Warn("settings cache invalidation failed")
	}
}
