package models

import (
	"time"

	"gorm.io/datatypes"
)

// Weekday names in business-hours order, Monday first.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// OrderTimeSlot is a window within a day during which orders are accepted.
type OrderTimeSlot struct {
	StartTime string `json:"start_time"` // Inclusive start, "HH:MM".
	EndTime   string `json:"end_time"`   // Inclusive end, "HH:MM".
	IsActive  bool   `json:"is_active"`  // Whether the slot counts.
}

// DaySchedule is one weekday's business-hours entry.
type DaySchedule struct {
	Day            string          `json:"day"`              // Lowercase weekday name.
	IsOpen         bool            `json:"is_open"`          // Whether the store opens at all that day.
	OpenTime       string          `json:"open_time"`        // Informational opening time, "HH:MM".
	CloseTime      string          `json:"close_time"`       // Informational closing time, "HH:MM".
	OrderTimeSlots []OrderTimeSlot `json:"order_time_slots"` // Order windows; empty means open all day.
}

// BusinessWeek holds exactly the seven weekday schedules.
type BusinessWeek struct {
	Days []DaySchedule `json:"days"` // Ordered Monday..Sunday.
}

// Schedule returns the schedule for a lowercase weekday name.
func (w BusinessWeek) Schedule(day string) (DaySchedule, bool) {
	for _, d := range w.Days {
		if d.Day == day {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// MaintenanceMode flags a storefront as temporarily unavailable.
type MaintenanceMode struct {
	IsEnabled        bool       `json:"is_enabled"`         // Whether maintenance is active.
	Message          string     `json:"message"`            // Shopper-facing message, max 500 chars.
	EstimatedEndTime *time.Time `json:"estimated_end_time"` // Optional expected end of maintenance.
}

// ReturnSettings governs post-order return behavior.
type ReturnSettings struct {
	IsEnabled  bool   `json:"is_enabled"`  // Whether returns are accepted.
	WindowDays int    `json:"window_days"` // Days after delivery a return is accepted.
	Conditions string `json:"conditions"`  // Free-text return conditions.
}

// RefundRules governs refund processing for returned orders.
type RefundRules struct {
	IsEnabled      bool    `json:"is_enabled"`      // Whether refunds are offered.
	RefundCharges  float64 `json:"refund_charges"`  // Deducted percentage, 0-100.
	ProcessingDays int     `json:"processing_days"` // Days until the refund is issued.
}

// CancellationRules governs order cancellation before shipment.
type CancellationRules struct {
	IsEnabled             bool    `json:"is_enabled"`              // Whether cancellation is allowed.
	CancellationTimeLimit int     `json:"cancellation_time_limit"` // Hours after placement, 0-168.
	CancellationCharges   float64 `json:"cancellation_charges"`    // Flat cancellation fee.
}

// CODSettings governs cash-on-delivery acceptance and amount brackets.
type CODSettings struct {
	IsEnabled            bool    `json:"is_enabled"`               // Whether COD is accepted.
	CODCharges           float64 `json:"cod_charges"`              // Flat COD handling fee.
	MinOrderAmountForCOD float64 `json:"min_order_amount_for_cod"` // Inclusive lower bound.
	MaxOrderAmountForCOD float64 `json:"max_order_amount_for_cod"` // Inclusive upper bound.
}

// AdminOverrides are administrator-set fields consumed with priority by
// the admission evaluator. Nil pointers mean no override in effect.
type AdminOverrides struct {
	ForceStoreOpen      *bool      `json:"force_store_open"`      // Bypasses store-open and business-hours guards.
	ForceCodEnabled     *bool      `json:"force_cod_enabled"`     // Enables COD regardless of seller settings.
	OverrideMaxQuantity *int       `json:"override_max_quantity"` // Replaces the per-user quantity cap.
	OverrideReason      string     `json:"override_reason"`       // Required audit reason.
	OverriddenBy        string     `json:"overridden_by"`         // Administrator identity.
	OverriddenAt        *time.Time `json:"overridden_at"`         // When the override was applied.
}

// IsZero reports whether no override field is set.
func (o AdminOverrides) IsZero() bool {
	return o.ForceStoreOpen == nil && o.ForceCodEnabled == nil && o.OverrideMaxQuantity == nil &&
		o.OverrideReason == "" && o.OverriddenBy == "" && o.OverriddenAt == nil
}

// StoreSettings is the per-seller storefront configuration record.
// There is at most one row per seller, enforced by the unique index.
type StoreSettings struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"-"` // Primary key.

	SellerID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"seller_id"` // Owning seller.

	StoreDescription        string `gorm:"type:text" json:"store_description"`                     // Max 1000 chars.
	MaxOrderQuantityPerUser int    `gorm:"not null;default:10" json:"max_order_quantity_per_user"` // Per-user cap, 1-1000.
	IsStoreOpen             bool   `gorm:"not null;default:true" json:"is_store_open"`             // Master open flag.

	BusinessHours     datatypes.JSONType[BusinessWeek]      `gorm:"type:jsonb" json:"business_hours"`     // Weekly schedule.
	MaintenanceMode   datatypes.JSONType[MaintenanceMode]   `gorm:"type:jsonb" json:"maintenance_mode"`   // Maintenance state.
	ReturnSettings    datatypes.JSONType[ReturnSettings]    `gorm:"type:jsonb" json:"return_settings"`    // Return policy.
	RefundRules       datatypes.JSONType[RefundRules]       `gorm:"type:jsonb" json:"refund_rules"`       // Refund policy.
	CancellationRules datatypes.JSONType[CancellationRules] `gorm:"type:jsonb" json:"cancellation_rules"` // Cancellation policy.
	CODSettings       datatypes.JSONType[CODSettings]       `gorm:"type:jsonb" json:"cod_settings"`       // COD brackets.
	AdminOverrides    datatypes.JSONType[AdminOverrides]    `gorm:"type:jsonb" json:"admin_overrides"`    // Admin override fields.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"` // Last update timestamp.
}

// TableName overrides the default table name.
func (StoreSettings) TableName() string {
	return "store_settings"
}
