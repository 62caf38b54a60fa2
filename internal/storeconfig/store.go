package storeconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vendora/vendora-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the durable home of per-seller storefront settings.
type Store struct {
	db *gorm.DB // Database handle for settings records.
}

// NewStore constructs a settings store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func jsonOf[T any](v T) datatypes.JSONType[T] {
	return datatypes.NewJSONType(v)
}

// GetOrCreate returns the seller's settings, creating a defaults record
// on first access. Uniqueness is enforced by the seller_id index; when
// a concurrent first access wins the insert race, the losing call
// re-reads the winner's row instead of failing.
func (s *Store) GetOrCreate(ctx context.Context, sellerID string) (*models.StoreSettings, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, invalid("seller_id", "must not be empty")
	}

	var settings models.StoreSettings
	err := s.db.WithContext(ctx).Where("seller_id = ?", sellerID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("storeconfig: load settings: %w", err)
	}

	created := defaultSettings(sellerID)
	if errCreate := s.db.WithContext(ctx).Create(&created).Error; errCreate != nil {
		if errFind := s.db.WithContext(ctx).Where("seller_id = ?", sellerID).First(&settings).Error; errFind == nil {
			return &settings, nil
		}
		return nil, fmt.Errorf("storeconfig: create settings: %w", errCreate)
	}
	return &created, nil
}

// BasicUpdate carries optional top-level settings fields.
type BasicUpdate struct {
	StoreDescription        *string `json:"store_description"`           // Optional description, max 1000 chars.
	MaxOrderQuantityPerUser *int    `json:"max_order_quantity_per_user"` // Optional per-user cap, 1-1000.
	IsStoreOpen             *bool   `json:"is_store_open"`               // Optional master open flag.
}

// UpdateBasic merges top-level fields into the seller's settings.
// A missing record is created first, so out-of-order setup upserts.
func (s *Store) UpdateBasic(ctx context.Context, sellerID string, patch BasicUpdate) (*models.StoreSettings, error) {
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.StoreDescription != nil {
		if errValidate := validateDescription(*patch.StoreDescription); errValidate != nil {
			return nil, errValidate
		}
		settings.StoreDescription = *patch.StoreDescription
		updates["store_description"] = settings.StoreDescription
	}
	if patch.MaxOrderQuantityPerUser != nil {
		if errValidate := validateMaxOrderQuantity(*patch.MaxOrderQuantityPerUser); errValidate != nil {
			return nil, errValidate
		}
		settings.MaxOrderQuantityPerUser = *patch.MaxOrderQuantityPerUser
		updates["max_order_quantity_per_user"] = settings.MaxOrderQuantityPerUser
	}
	if patch.IsStoreOpen != nil {
		settings.IsStoreOpen = *patch.IsStoreOpen
		updates["is_store_open"] = settings.IsStoreOpen
	}

	return s.persist(ctx, settings, updates)
}

// UpdateBusinessHours replaces the full weekly schedule. The payload
// must cover exactly the seven weekdays.
func (s *Store) UpdateBusinessHours(ctx context.Context, sellerID string, week models.BusinessWeek) (*models.StoreSettings, error) {
	if errValidate := validateBusinessWeek(week); errValidate != nil {
		return nil, errValidate
	}
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	settings.BusinessHours = jsonOf(week)
	return s.persist(ctx, settings, map[string]any{"business_hours": settings.BusinessHours})
}

// MaintenanceUpdate carries optional maintenance-mode fields.
type MaintenanceUpdate struct {
	IsEnabled        *bool      `json:"is_enabled"`         // Optional maintenance toggle.
	Message          *string    `json:"message"`            // Optional message, max 500 chars.
	EstimatedEndTime *time.Time `json:"estimated_end_time"` // Optional expected end time.
}

// UpdateMaintenance merges maintenance-mode fields.
func (s *Store) UpdateMaintenance(ctx context.Context, sellerID string, patch MaintenanceUpdate) (*models.StoreSettings, error) {
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	mode := settings.MaintenanceMode.Data()
	if patch.IsEnabled != nil {
		mode.IsEnabled = *patch.IsEnabled
	}
	if patch.Message != nil {
		mode.Message = *patch.Message
	}
	if patch.EstimatedEndTime != nil {
		mode.EstimatedEndTime = patch.EstimatedEndTime
	}
	if errValidate := validateMaintenance(mode); errValidate != nil {
		return nil, errValidate
	}
	settings.MaintenanceMode = jsonOf(mode)
	return s.persist(ctx, settings, map[string]any{"maintenance_mode": settings.MaintenanceMode})
}

// ReturnUpdate carries optional return-policy fields.
type ReturnUpdate struct {
	IsEnabled  *bool   `json:"is_enabled"`  // Optional returns toggle.
	WindowDays *int    `json:"window_days"` // Optional return window in days.
	Conditions *string `json:"conditions"`  // Optional free-text conditions.
}

// UpdateReturnSettings merges return-policy fields.
func (s *Store) UpdateReturnSettings(ctx context.Context, sellerID string, patch ReturnUpdate) (*models.StoreSettings, error) {
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	rs := settings.ReturnSettings.Data()
	if patch.IsEnabled != nil {
		rs.IsEnabled = *patch.IsEnabled
	}
	if patch.WindowDays != nil {
		rs.WindowDays = *patch.WindowDays
	}
	if patch.Conditions != nil {
		rs.Conditions = *patch.Conditions
	}
	if errValidate := validateReturnSettings(rs); errValidate != nil {
		return nil, errValidate
	}
	settings.ReturnSettings = jsonOf(rs)
	return s.persist(ctx, settings, map[string]any{"return_settings": settings.ReturnSettings})
}

// RefundUpdate carries optional refund-rule fields.
type RefundUpdate struct {
	IsEnabled      *bool    `json:"is_enabled"`      // Optional refunds toggle.
	RefundCharges  *float64 `json:"refund_charges"`  // Optional deducted percentage, 0-100.
	ProcessingDays *int     `json:"processing_days"` // Optional processing days.
}

// UpdateRefundRules merges refund-rule fields.
func (s *Store) UpdateRefundRules(ctx context.Context, sellerID string, patch RefundUpdate) (*models.StoreSettings, error) {
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	rules := settings.RefundRules.Data()
	if patch.IsEnabled != nil {
		rules.IsEnabled = *patch.IsEnabled
	}
	if patch.RefundCharges != nil {
		rules.RefundCharges = *patch.RefundCharges
	}
	if patch.ProcessingDays != nil {
		rules.ProcessingDays = *patch.ProcessingDays
	}
	if errValidate := validateRefundRules(rules); errValidate != nil {
		return nil, errValidate
	}
	settings.RefundRules = jsonOf(rules)
	return s.persist(ctx, settings, map[string]any{"refund_rules": settings.RefundRules})
}

// CancellationUpdate carries optional cancellation-rule fields.
type CancellationUpdate struct {
	IsEnabled             *bool    `json:"is_enabled"`              // Optional cancellation toggle.
	CancellationTimeLimit *int     `json:"cancellation_time_limit"` // Optional limit in hours, 0-168.
	CancellationCharges   *float64 `json:"cancellation_charges"`    // Optional flat fee.
}

// UpdateCancellationRules merges cancellation-rule fields.
func (s *Store) UpdateCancellationRules(ctx context.Context, sellerID string, patch CancellationUpdate) (*models.StoreSettings, error) {
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	rules := settings.CancellationRules.Data()
	if patch.IsEnabled != nil {
		rules.IsEnabled = *patch.IsEnabled
	}
	if patch.CancellationTimeLimit != nil {
		rules.CancellationTimeLimit = *patch.CancellationTimeLimit
	}
	if patch.CancellationCharges != nil {
		rules.CancellationCharges = *patch.CancellationCharges
	}
	if errValidate := validateCancellationRules(rules); errValidate != nil {
		return nil, errValidate
	}
	settings.CancellationRules = jsonOf(rules)
	return s.persist(ctx, settings, map[string]any{"cancellation_rules": settings.CancellationRules})
}

// CODUpdate carries optional cash-on-delivery fields.
type CODUpdate struct {
	IsEnabled            *bool    `json:"is_enabled"`               // Optional COD toggle.
	CODCharges           *float64 `json:"cod_charges"`              // Optional handling fee.
	MinOrderAmountForCOD *float64 `json:"min_order_amount_for_cod"` // Optional lower bound.
	MaxOrderAmountForCOD *float64 `json:"max_order_amount_for_cod"` // Optional upper bound.
}

// UpdateCODSettings merges COD fields. The merged min/max bracket must
// satisfy min <= max.
func (s *Store) UpdateCODSettings(ctx context.Context, sellerID string, patch CODUpdate) (*models.StoreSettings, error) {
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	cod := settings.CODSettings.Data()
	if patch.IsEnabled != nil {
		cod.IsEnabled = *patch.IsEnabled
	}
	if patch.CODCharges != nil {
		cod.CODCharges = *patch.CODCharges
	}
	if patch.MinOrderAmountForCOD != nil {
		cod.MinOrderAmountForCOD = *patch.MinOrderAmountForCOD
	}
	if patch.MaxOrderAmountForCOD != nil {
		cod.MaxOrderAmountForCOD = *patch.MaxOrderAmountForCOD
	}
	if errValidate := validateCODSettings(cod); errValidate != nil {
		return nil, errValidate
	}
	settings.CODSettings = jsonOf(cod)
	return s.persist(ctx, settings, map[string]any{"cod_settings": settings.CODSettings})
}

// SetOverrides replaces the admin override fields wholesale.
func (s *Store) SetOverrides(ctx context.Context, sellerID string, overrides models.AdminOverrides) (*models.StoreSettings, error) {
	if errValidate := validateOverrides(overrides); errValidate != nil {
		return nil, errValidate
	}
	settings, err := s.GetOrCreate(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	settings.AdminOverrides = jsonOf(overrides)
	return s.persist(ctx, settings, map[string]any{"admin_overrides": settings.AdminOverrides})
}

// ClearOverrides removes all admin override fields in one write.
func (s *Store) ClearOverrides(ctx context.Context, sellerID string) (*models.StoreSettings, error) {
	return s.SetOverrides(ctx, sellerID, models.AdminOverrides{})
}

// persist writes the given columns and refreshes the updated timestamp.
func (s *Store) persist(ctx context.Context, settings *models.StoreSettings, updates map[string]any) (*models.StoreSettings, error) {
	if len(updates) == 0 {
		return settings, nil
	}
	now := time.Now().UTC()
	updates["updated_at"] = now
	res := s.db.WithContext(ctx).Model(&models.StoreSettings{}).Where("id = ?", settings.ID).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("storeconfig: update settings: %w", res.Error)
	}
	settings.UpdatedAt = now
	return settings, nil
}
