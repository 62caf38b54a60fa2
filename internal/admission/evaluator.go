package admission

import (
	"fmt"
	"strings"
	"time"

	"github.com/vendora/vendora-backend/internal/models"
)

// Evaluate runs the ordered guard chain against a seller's settings and
// returns the admission decision. It is a pure function: no I/O, no
// side effects; the first failing guard determines the rejection.
//
// Guard order: store-open, maintenance, business-hours/time-slots,
// quantity, COD. A forceStoreOpen override bypasses the store-open and
// business-hours guards, never maintenance, quantity, or COD.
func Evaluate(settings *models.StoreSettings, order OrderContext) (Decision, error) {
	if err := order.Validate(); err != nil {
		return Decision{}, err
	}

	at := order.EvaluationTime
	if at.IsZero() {
		at = time.Now()
	}

	overrides := settings.AdminOverrides.Data()
	forceOpen := overrides.ForceStoreOpen != nil && *overrides.ForceStoreOpen

	if !forceOpen && !settings.IsStoreOpen {
		return reject(ReasonStoreClosed, "the store is currently closed", nil), nil
	}

	if maintenance := settings.MaintenanceMode.Data(); maintenance.IsEnabled {
		message := maintenance.Message
		if message == "" {
			message = "the store is under maintenance"
		}
		details := map[string]any{}
		if maintenance.EstimatedEndTime != nil {
			details["estimated_end_time"] = *maintenance.EstimatedEndTime
		}
		return reject(ReasonMaintenance, message, details), nil
	}

	if !forceOpen {
		if decision, rejected := checkBusinessHours(settings.BusinessHours.Data(), at); rejected {
			return decision, nil
		}
	}

	maxQuantity := settings.MaxOrderQuantityPerUser
	// An override of 0 is treated the same as no override in effect.
	if overrides.OverrideMaxQuantity != nil && *overrides.OverrideMaxQuantity != 0 {
		maxQuantity = *overrides.OverrideMaxQuantity
	}
	if order.Quantity > maxQuantity {
		return reject(
			ReasonQuantityExceeded,
			fmt.Sprintf("quantity exceeds the per-user limit of %d", maxQuantity),
			map[string]any{"max_allowed": maxQuantity},
		), nil
	}

	if order.PaymentMethod == PaymentCOD {
		if decision, rejected := checkCOD(settings.CODSettings.Data(), overrides, order.Amount); rejected {
			return decision, nil
		}
	}

	return allow(), nil
}

// checkBusinessHours enforces the weekday schedule and order slots.
// An empty slot list keeps the day open end to end; otherwise the
// zero-padded "HH:MM" of the evaluation time must fall inside an
// active slot, boundaries inclusive.
func checkBusinessHours(week models.BusinessWeek, at time.Time) (Decision, bool) {
	day := strings.ToLower(at.Weekday().String())
	schedule, ok := week.Schedule(day)
	if !ok || !schedule.IsOpen {
		return reject(
			ReasonClosedToday,
			fmt.Sprintf("the store does not accept orders on %s", day),
			map[string]any{"day": day},
		), true
	}

	if len(schedule.OrderTimeSlots) == 0 {
		return Decision{}, false
	}

	hhmm := at.Format("15:04")
	activeSlots := make([]string, 0, len(schedule.OrderTimeSlots))
	for _, slot := range schedule.OrderTimeSlots {
		if !slot.IsActive {
			continue
		}
		activeSlots = append(activeSlots, slot.StartTime+"-"+slot.EndTime)
		if hhmm >= slot.StartTime && hhmm <= slot.EndTime {
			return Decision{}, false
		}
	}

	return reject(
		ReasonOutsideOrderHours,
		"orders are only accepted during the listed time slots",
		map[string]any{"day": day, "active_slots": activeSlots},
	), true
}

// checkCOD enforces COD availability and the amount bracket.
func checkCOD(cod models.CODSettings, overrides models.AdminOverrides, amount float64) (Decision, bool) {
	forceCOD := overrides.ForceCodEnabled != nil && *overrides.ForceCodEnabled
	if !cod.IsEnabled && !forceCOD {
		return reject(ReasonCODDisabled, "cash on delivery is not available for this store", nil), true
	}

	if amount < cod.MinOrderAmountForCOD {
		return reject(
			ReasonCODAmountTooLow,
			fmt.Sprintf("order amount is below the COD minimum of %g", cod.MinOrderAmountForCOD),
			map[string]any{"min_amount": cod.MinOrderAmountForCOD},
		), true
	}
	if amount > cod.MaxOrderAmountForCOD {
		return reject(
			ReasonCODAmountTooHigh,
			fmt.Sprintf("order amount is above the COD maximum of %g", cod.MaxOrderAmountForCOD),
			map[string]any{"max_amount": cod.MaxOrderAmountForCOD},
		), true
	}
	return Decision{}, false
}
