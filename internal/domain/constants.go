package domain

import "github.com/m04kA/GMS-SessionService/pkg/types"

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 30
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Дефолтные рабочие часы зала
// Применяются, когда расписание из StudioService недоступно
var (
	DefaultOpenTime  = types.TimeString("09:00")
	DefaultCloseTime = types.TimeString("24:00")
)

// Business validation constants
const (
	MinSessionDurationMinutes   = 15
	MaxSessionDurationMinutes   = 480 // 8 hours
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses список всех допустимых статусов занятия
var ValidStatuses = []SessionStatus{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses список статусов занятий, занимающих свой интервал
// Используется для фильтрации при проверке пересечений
var ActiveStatuses = []SessionStatus{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
}
