package admission

import (
	"testing"
	"time"

	"github.com/vendora/vendora-backend/internal/models"
	"gorm.io/datatypes"
)

// monday13 is a Monday at 13:00 UTC.
var monday13 = time.Date(2026, time.August, 24, 13, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func openWeek() models.BusinessWeek {
	days := make([]models.DaySchedule, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		days = append(days, models.DaySchedule{
			Day:       day,
			IsOpen:    true,
			OpenTime:  "09:00",
			CloseTime: "18:00",
			OrderTimeSlots: []models.OrderTimeSlot{
				{StartTime: "09:00", EndTime: "12:00", IsActive: true},
				{StartTime: "14:00", EndTime: "18:00", IsActive: true},
			},
		})
	}
	return models.BusinessWeek{Days: days}
}

func testSettings(mutate func(*models.StoreSettings)) *models.StoreSettings {
	settings := &models.StoreSettings{
		SellerID:                "seller-1",
		MaxOrderQuantityPerUser: 10,
		IsStoreOpen:             true,
		BusinessHours:           datatypes.NewJSONType(openWeek()),
		MaintenanceMode:         datatypes.NewJSONType(models.MaintenanceMode{}),
		CODSettings: datatypes.NewJSONType(models.CODSettings{
			IsEnabled:            true,
			MinOrderAmountForCOD: 100,
			MaxOrderAmountForCOD: 50000,
		}),
		AdminOverrides: datatypes.NewJSONType(models.AdminOverrides{}),
	}
	if mutate != nil {
		mutate(settings)
	}
	return settings
}

func testOrder(mutate func(*OrderContext)) OrderContext {
	order := OrderContext{
		SellerID:       "seller-1",
		Quantity:       5,
		Amount:         200,
		PaymentMethod:  PaymentCOD,
		EvaluationTime: monday13.Add(-3 * time.Hour), // Monday 10:00, inside a slot.
	}
	if mutate != nil {
		mutate(&order)
	}
	return order
}

func TestEvaluateRejectsMalformedContext(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*OrderContext)
	}{
		{"empty seller", func(o *OrderContext) { o.SellerID = "" }},
		{"zero quantity", func(o *OrderContext) { o.Quantity = 0 }},
		{"negative quantity", func(o *OrderContext) { o.Quantity = -1 }},
		{"negative amount", func(o *OrderContext) { o.Amount = -5 }},
		{"unknown payment method", func(o *OrderContext) { o.PaymentMethod = "CHEQUE" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(testSettings(nil), testOrder(tc.mutate))
			if err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestEvaluateStoreClosed(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) { s.IsStoreOpen = false })

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonStoreClosed {
		t.Fatalf("expected STORE_CLOSED, got %+v", decision)
	}
}

func TestEvaluateForceStoreOpenBypassesClosedStore(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		s.IsStoreOpen = false
		s.AdminOverrides = datatypes.NewJSONType(models.AdminOverrides{ForceStoreOpen: boolPtr(true)})
	})

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow with forceStoreOpen, got %+v", decision)
	}
}

func TestEvaluateMaintenancePrecedesEverythingButValidation(t *testing.T) {
	endTime := monday13.Add(2 * time.Hour)
	settings := testSettings(func(s *models.StoreSettings) {
		s.MaintenanceMode = datatypes.NewJSONType(models.MaintenanceMode{
			IsEnabled:        true,
			Message:          "back soon",
			EstimatedEndTime: &endTime,
		})
		// Maintenance wins even with the store open, inside a slot,
		// and forceStoreOpen set.
		s.AdminOverrides = datatypes.NewJSONType(models.AdminOverrides{ForceStoreOpen: boolPtr(true)})
	})

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonMaintenance {
		t.Fatalf("expected MAINTENANCE, got %+v", decision)
	}
	if decision.Message != "back soon" {
		t.Fatalf("expected maintenance message surfaced, got %q", decision.Message)
	}
	if _, ok := decision.Details["estimated_end_time"]; !ok {
		t.Fatalf("expected estimated_end_time in details")
	}
}

func TestEvaluateClosedToday(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		week := openWeek()
		week.Days[0].IsOpen = false // Monday.
		s.BusinessHours = datatypes.NewJSONType(week)
	})

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonClosedToday {
		t.Fatalf("expected CLOSED_TODAY, got %+v", decision)
	}

	// forceStoreOpen bypasses the weekday guard too.
	settings = testSettings(func(s *models.StoreSettings) {
		week := openWeek()
		week.Days[0].IsOpen = false
		s.BusinessHours = datatypes.NewJSONType(week)
		s.AdminOverrides = datatypes.NewJSONType(models.AdminOverrides{ForceStoreOpen: boolPtr(true)})
	})
	decision, err = Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow with forceStoreOpen on a closed day, got %+v", decision)
	}
}

func TestEvaluateOutsideOrderHours(t *testing.T) {
	// Monday 13:00 falls in the gap between the two slots.
	decision, err := Evaluate(testSettings(nil), testOrder(func(o *OrderContext) {
		o.EvaluationTime = monday13
	}))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonOutsideOrderHours {
		t.Fatalf("expected OUTSIDE_ORDER_HOURS, got %+v", decision)
	}
	slots, ok := decision.Details["active_slots"].([]string)
	if !ok {
		t.Fatalf("expected active_slots in details, got %+v", decision.Details)
	}
	want := []string{"09:00-12:00", "14:00-18:00"}
	if len(slots) != len(want) || slots[0] != want[0] || slots[1] != want[1] {
		t.Fatalf("active_slots = %v, want %v", slots, want)
	}
}

func TestEvaluateSlotBoundariesInclusive(t *testing.T) {
	for _, hhmm := range []struct {
		hour, minute int
	}{
		{9, 0},  // Exactly a slot start.
		{12, 0}, // Exactly a slot end.
	} {
		at := time.Date(2026, time.August, 24, hhmm.hour, hhmm.minute, 0, 0, time.UTC)
		decision, err := Evaluate(testSettings(nil), testOrder(func(o *OrderContext) {
			o.EvaluationTime = at
		}))
		if err != nil {
			t.Fatalf("evaluate at %v: %v", at, err)
		}
		if !decision.Allowed {
			t.Fatalf("expected allow at boundary %v, got %+v", at, decision)
		}
	}
}

func TestEvaluateEmptySlotListMeansOpenAllDay(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		week := openWeek()
		week.Days[0].OrderTimeSlots = nil
		s.BusinessHours = datatypes.NewJSONType(week)
	})

	decision, err := Evaluate(settings, testOrder(func(o *OrderContext) {
		o.EvaluationTime = time.Date(2026, time.August, 24, 23, 30, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow with no slots configured, got %+v", decision)
	}
}

func TestEvaluateInactiveSlotsDoNotAdmit(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		week := openWeek()
		week.Days[0].OrderTimeSlots = []models.OrderTimeSlot{
			{StartTime: "09:00", EndTime: "12:00", IsActive: false},
		}
		s.BusinessHours = datatypes.NewJSONType(week)
	})

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonOutsideOrderHours {
		t.Fatalf("expected OUTSIDE_ORDER_HOURS with inactive slot, got %+v", decision)
	}
}

func TestEvaluateQuantityCap(t *testing.T) {
	// At the cap passes.
	decision, err := Evaluate(testSettings(nil), testOrder(func(o *OrderContext) { o.Quantity = 10 }))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow at cap, got %+v", decision)
	}

	// One over the cap fails and reports the cap.
	decision, err = Evaluate(testSettings(nil), testOrder(func(o *OrderContext) { o.Quantity = 11 }))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonQuantityExceeded {
		t.Fatalf("expected QUANTITY_EXCEEDED, got %+v", decision)
	}
	if maxAllowed, _ := decision.Details["max_allowed"].(int); maxAllowed != 10 {
		t.Fatalf("expected max_allowed=10, got %+v", decision.Details)
	}
}

func TestEvaluateQuantityOverrideReplacesCap(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		s.AdminOverrides = datatypes.NewJSONType(models.AdminOverrides{OverrideMaxQuantity: intPtr(50)})
	})

	decision, err := Evaluate(settings, testOrder(func(o *OrderContext) { o.Quantity = 20 }))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow with overridden cap, got %+v", decision)
	}
}

func TestEvaluateQuantityOverrideZeroIsUnset(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		s.AdminOverrides = datatypes.NewJSONType(models.AdminOverrides{OverrideMaxQuantity: intPtr(0)})
	})

	// The base cap of 10 still applies.
	decision, err := Evaluate(settings, testOrder(func(o *OrderContext) { o.Quantity = 10 }))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow at base cap with zero override, got %+v", decision)
	}
}

func TestEvaluateCODBracket(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   ReasonCode
	}{
		{"at min", 100, ""},
		{"at max", 50000, ""},
		{"below min", 99, ReasonCODAmountTooLow},
		{"above max", 50001, ReasonCODAmountTooHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := Evaluate(testSettings(nil), testOrder(func(o *OrderContext) {
				o.Amount = tc.amount
			}))
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if tc.want == "" {
				if !decision.Allowed {
					t.Fatalf("expected allow, got %+v", decision)
				}
				return
			}
			if decision.Allowed || decision.ReasonCode != tc.want {
				t.Fatalf("expected %s, got %+v", tc.want, decision)
			}
		})
	}
}

func TestEvaluateCODDisabled(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		s.CODSettings = datatypes.NewJSONType(models.CODSettings{IsEnabled: false, MaxOrderAmountForCOD: 50000})
	})

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonCODDisabled {
		t.Fatalf("expected COD_DISABLED, got %+v", decision)
	}

	// Online payments never hit the COD guard.
	decision, err = Evaluate(settings, testOrder(func(o *OrderContext) { o.PaymentMethod = PaymentOnline }))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow for online payment, got %+v", decision)
	}
}

func TestEvaluateForceCodEnabledOverridesDisabledCOD(t *testing.T) {
	settings := testSettings(func(s *models.StoreSettings) {
		s.CODSettings = datatypes.NewJSONType(models.CODSettings{
			IsEnabled:            false,
			MinOrderAmountForCOD: 100,
			MaxOrderAmountForCOD: 50000,
		})
		s.AdminOverrides = datatypes.NewJSONType(models.AdminOverrides{ForceCodEnabled: boolPtr(true)})
	})

	decision, err := Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow with forceCodEnabled, got %+v", decision)
	}
}

func TestEvaluateMondayScenario(t *testing.T) {
	// Monday open, slots 09:00-12:00 and 14:00-18:00, cap 10, COD
	// bracket 100-50000.
	settings := testSettings(nil)

	// Monday 13:00 sits between the slots.
	decision, err := Evaluate(settings, testOrder(func(o *OrderContext) {
		o.EvaluationTime = monday13
	}))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if decision.Allowed || decision.ReasonCode != ReasonOutsideOrderHours {
		t.Fatalf("expected OUTSIDE_ORDER_HOURS at 13:00, got %+v", decision)
	}

	// Monday 10:00 with the same context is admitted.
	decision, err = Evaluate(settings, testOrder(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow at 10:00, got %+v", decision)
	}
}
