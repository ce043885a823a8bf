package studioservice

import "time"

// Studio модель студии из StudioService
type Studio struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	City         string       `json:"city"`
	Address      string       `json:"address"`
	ManagerIDs   []int64      `json:"manager_ids"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// Machine модель тренажера из StudioService
type Machine struct {
	ID       int64  `json:"id"`
	StudioID int64  `json:"studio_id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // Тип тренажера (cardio, strength, functional)
	IsActive bool   `json:"is_active"`
}

// WeekSchedule расписание работы студии по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "22:00" или "24:00"
}

// ForDate возвращает расписание работы студии на указанную дату
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// ErrorResponse модель ошибки от StudioService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
