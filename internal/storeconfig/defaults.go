package storeconfig

import "github.com/vendora/vendora-backend/internal/models"

// Default values applied when a seller's settings record is created lazily.
const (
	// DefaultMaxOrderQuantityPerUser caps per-user quantities out of the box.
	DefaultMaxOrderQuantityPerUser = 10
	// DefaultCODMinAmount is the default lower COD bracket bound.
	DefaultCODMinAmount = 0
	// DefaultCODMaxAmount is the default upper COD bracket bound.
	DefaultCODMaxAmount = 10000
)

// DefaultBusinessWeek returns the out-of-the-box weekly schedule:
// Monday through Saturday open 09:00-18:00 with two order slots,
// Sunday closed.
func DefaultBusinessWeek() models.BusinessWeek {
	days := make([]models.DaySchedule, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		open := day != "sunday"
		schedule := models.DaySchedule{
			Day:       day,
			IsOpen:    open,
			OpenTime:  "09:00",
			CloseTime: "18:00",
		}
		if open {
			schedule.OrderTimeSlots = []models.OrderTimeSlot{
				{StartTime: "10:00", EndTime: "13:00", IsActive: true},
				{StartTime: "15:00", EndTime: "18:00", IsActive: true},
			}
		}
		days = append(days, schedule)
	}
	return models.BusinessWeek{Days: days}
}

// defaultSettings builds the settings record created on first access.
func defaultSettings(sellerID string) models.StoreSettings {
	return models.StoreSettings{
		SellerID:                sellerID,
		MaxOrderQuantityPerUser: DefaultMaxOrderQuantityPerUser,
		IsStoreOpen:             true,
		BusinessHours:           jsonOf(DefaultBusinessWeek()),
		MaintenanceMode:         jsonOf(models.MaintenanceMode{}),
		ReturnSettings:          jsonOf(models.ReturnSettings{IsEnabled: true, WindowDays: 7}),
		RefundRules:             jsonOf(models.RefundRules{IsEnabled: true, ProcessingDays: 5}),
		CancellationRules:       jsonOf(models.CancellationRules{IsEnabled: true, CancellationTimeLimit: 24}),
		CODSettings: jsonOf(models.CODSettings{
			IsEnabled:            true,
			MinOrderAmountForCOD: DefaultCODMinAmount,
			MaxOrderAmountForCOD: DefaultCODMaxAmount,
		}),
		AdminOverrides: jsonOf(models.AdminOverrides{}),
	}
}
