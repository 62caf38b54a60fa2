package storeconfig

import (
	"fmt"
	"regexp"

	"github.com/vendora/vendora-backend/internal/models"
)

// Write-time validation bounds for settings fields.
const (
	maxDescriptionLen        = 1000
	maxMaintenanceMessageLen = 500
	minOrderQuantityCap      = 1
	maxOrderQuantityCap      = 1000
	maxReturnWindowDays      = 90
	maxRefundProcessingDays  = 30
	maxCancellationHours     = 168
)

// hhmmPattern matches zero-padded 24h "HH:MM" times.
var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidationError reports a rejected settings field.
type ValidationError struct {
	Field   string // Dotted field path, e.g. "cod.min_order_amount_for_cod".
	Message string // Human-readable reason.
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("storeconfig: invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// validHHMM reports whether s is a zero-padded "HH:MM" time.
func validHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

func validateDescription(s string) error {
	if len(s) > maxDescriptionLen {
		return invalid("basic.store_description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}
	return nil
}

func validateMaxOrderQuantity(n int) error {
	if n < minOrderQuantityCap || n > maxOrderQuantityCap {
		return invalid("basic.max_order_quantity_per_user", fmt.Sprintf("must be between %d and %d", minOrderQuantityCap, maxOrderQuantityCap))
	}
	return nil
}

// validateBusinessWeek requires exactly the seven weekdays in order and
// well-formed times on every day and slot.
func validateBusinessWeek(week models.BusinessWeek) error {
	if len(week.Days) != len(models.Weekdays) {
		return invalid("business_hours.days", "must contain exactly the 7 weekdays")
	}
	for i, day := range week.Days {
		if day.Day != models.Weekdays[i] {
			return invalid("business_hours.days", fmt.Sprintf("day %d must be %q", i, models.Weekdays[i]))
		}
		field := "business_hours." + day.Day
		if !validHHMM(day.OpenTime) {
			return invalid(field+".open_time", "must be HH:MM")
		}
		if !validHHMM(day.CloseTime) {
			return invalid(field+".close_time", "must be HH:MM")
		}
		for j, slot := range day.OrderTimeSlots {
			slotField := fmt.Sprintf("%s.order_time_slots[%d]", field, j)
			if !validHHMM(slot.StartTime) {
				return invalid(slotField+".start_time", "must be HH:MM")
			}
			if !validHHMM(slot.EndTime) {
				return invalid(slotField+".end_time", "must be HH:MM")
			}
			if slot.StartTime > slot.EndTime {
				return invalid(slotField, "start_time must not be after end_time")
			}
		}
	}
	return nil
}

func validateMaintenance(m models.MaintenanceMode) error {
	if len(m.Message) > maxMaintenanceMessageLen {
		return invalid("maintenance.message", fmt.Sprintf("must be at most %d characters", maxMaintenanceMessageLen))
	}
	return nil
}

func validateReturnSettings(r models.ReturnSettings) error {
	if r.WindowDays < 0 || r.WindowDays > maxReturnWindowDays {
		return invalid("return.window_days", fmt.Sprintf("must be between 0 and %d", maxReturnWindowDays))
	}
	return nil
}

func validateRefundRules(r models.RefundRules) error {
	if r.RefundCharges < 0 || r.RefundCharges > 100 {
		return invalid("refund.refund_charges", "must be between 0 and 100 percent")
	}
	if r.ProcessingDays < 0 || r.ProcessingDays > maxRefundProcessingDays {
		return invalid("refund.processing_days", fmt.Sprintf("must be between 0 and %d", maxRefundProcessingDays))
	}
	return nil
}

func validateCancellationRules(r models.CancellationRules) error {
	if r.CancellationTimeLimit < 0 || r.CancellationTimeLimit > maxCancellationHours {
		return invalid("cancellation.cancellation_time_limit", fmt.Sprintf("must be between 0 and %d hours", maxCancellationHours))
	}
	if r.CancellationCharges < 0 {
		return invalid("cancellation.cancellation_charges", "must not be negative")
	}
	return nil
}

func validateCODSettings(c models.CODSettings) error {
	if c.CODCharges < 0 {
		return invalid("cod.cod_charges", "must not be negative")
	}
	if c.MinOrderAmountForCOD < 0 {
		return invalid("cod.min_order_amount_for_cod", "must not be negative")
	}
	if c.MaxOrderAmountForCOD < 0 {
		return invalid("cod.max_order_amount_for_cod", "must not be negative")
	}
	if c.MinOrderAmountForCOD > c.MaxOrderAmountForCOD {
		return invalid("cod.min_order_amount_for_cod", "must not exceed max_order_amount_for_cod")
	}
	return nil
}

func validateOverrides(o models.AdminOverrides) error {
	if o.OverrideMaxQuantity != nil {
		n := *o.OverrideMaxQuantity
		if n < 0 || n > maxOrderQuantityCap {
			return invalid("overrides.override_max_quantity", fmt.Sprintf("must be between 0 and %d", maxOrderQuantityCap))
		}
	}
	return nil
}
