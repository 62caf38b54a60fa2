package override

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vendora/vendora-backend/internal/cache"
	"github.com/vendora/vendora-backend/internal/db"
	"github.com/vendora/vendora-backend/internal/storeconfig"
)

func setupManager(t *testing.T) (*Manager, *cache.MemoryClient) {
	t.Helper()
	dsn := fmt.Sprintf("file:override_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err = db.Migrate(conn); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	memCache := cache.NewMemoryClient()
	return NewManager(storeconfig.NewStore(conn), memCache), memCache
}

func TestApplyRequiresReason(t *testing.T) {
	manager, _ := setupManager(t)

	force := true
	_, err := manager.Apply(context.Background(), "seller-1", Patch{ForceStoreOpen: &force, Reason: "   "})
	var validationErr *storeconfig.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for blank reason, got %v", err)
	}
}

func TestApplyRequiresAtLeastOneField(t *testing.T) {
	manager, _ := setupManager(t)

	_, err := manager.Apply(context.Background(), "seller-1", Patch{Reason: "because"})
	var validationErr *storeconfig.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}
}

func TestApplyStampsAuditFieldsAndInvalidatesCache(t *testing.T) {
	manager, memCache := setupManager(t)
	ctx := context.Background()

	if err := memCache.Set(ctx, cache.SettingsKey("seller-1"), []byte("{}"), time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	force := true
	quantity := 25
	before := time.Now().UTC()
	settings, err := manager.Apply(ctx, "seller-1", Patch{
		ForceStoreOpen:      &force,
		OverrideMaxQuantity: &quantity,
		Reason:              "flash sale",
		AdminID:             "admin-7",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	overrides := settings.AdminOverrides.Data()
	if overrides.ForceStoreOpen == nil || !*overrides.ForceStoreOpen {
		t.Fatalf("expected forceStoreOpen persisted, got %+v", overrides)
	}
	if overrides.OverrideMaxQuantity == nil || *overrides.OverrideMaxQuantity != 25 {
		t.Fatalf("expected quantity override persisted, got %+v", overrides)
	}
	if overrides.OverriddenBy != "admin-7" || overrides.OverrideReason != "flash sale" {
		t.Fatalf("expected audit stamp, got %+v", overrides)
	}
	if overrides.OverriddenAt == nil || overrides.OverriddenAt.Before(before) {
		t.Fatalf("expected overriddenAt stamped, got %v", overrides.OverriddenAt)
	}

	if _, ok, _ := memCache.Get(ctx, cache.SettingsKey("seller-1")); ok {
		t.Fatalf("expected cached settings invalidated after apply")
	}
}

func TestRemoveClearsOverridesAndInvalidatesCache(t *testing.T) {
	manager, memCache := setupManager(t)
	ctx := context.Background()

	force := true
	if _, err := manager.Apply(ctx, "seller-1", Patch{ForceStoreOpen: &force, Reason: "festival", AdminID: "admin-1"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := memCache.Set(ctx, cache.SettingsKey("seller-1"), []byte("{}"), time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	settings, err := manager.Remove(ctx, "seller-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !settings.AdminOverrides.Data().IsZero() {
		t.Fatalf("expected all overrides cleared, got %+v", settings.AdminOverrides.Data())
	}
	if _, ok, _ := memCache.Get(ctx, cache.SettingsKey("seller-1")); ok {
		t.Fatalf("expected cached settings invalidated after remove")
	}
}
