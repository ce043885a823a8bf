package reschedule_session

import (
	"fmt"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Длительность опциональна (0 = без изменений), но если указана - в допустимых пределах
	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
		}
	}

	return nil
}

// validateDate проверяет, что новая дата подходит для занятия
func validateDate(sessionDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(sessionDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	sessionDateOnly := time.Date(sessionDate.Year(), sessionDate.Month(), sessionDate.Day(), 0, 0, 0, 0, sessionDate.Location())

	if sessionDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что перенос не нарушает minBookingNoticeMinutes
func validateBookingTime(
	sessionDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если новая дата не сегодня, проверка не нужна
	if !isSameDay(sessionDate, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	// Проверяем, что время начала не раньше минимального
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateWithinWorkingHours проверяет, что занятие целиком укладывается
// в рабочие часы [openTime, closeTime)
func validateWithinWorkingHours(
	startTime types.TimeString,
	durationMinutes int,
	openTime, closeTime types.TimeString,
) error {
	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		// Занятие выходит за полночь
		return ErrOutsideWorkingHours
	}

	if startTime.IsBefore(openTime) {
		return ErrOutsideWorkingHours
	}

	if closeTime.IsBefore(endTime) {
		return ErrOutsideWorkingHours
	}

	return nil
}

// effectiveWorkingHours возвращает действующие рабочие часы на указанный день
//
// Если расписание от StudioService отсутствует или некорректно, применяются
// дефолтные часы 09:00-24:00, факт применения логируется
func effectiveWorkingHours(day studioservice.DaySchedule, log Logger) (open, close types.TimeString, isOpen bool) {
	if !day.IsOpen {
		return "", "", false
	}

	open = domain.DefaultOpenTime
	close = domain.DefaultCloseTime

	if day.OpenTime == nil || day.CloseTime == nil {
		log.Warn("effectiveWorkingHours: incomplete working hours, falling back to defaults %s-%s", open, close)
		return open, close, true
	}

	dayOpen := types.TimeString(*day.OpenTime)
	dayClose := types.TimeString(*day.CloseTime)

	if dayOpen.Validate() != nil || dayClose.Validate() != nil || !dayOpen.IsBefore(dayClose) {
		log.Warn("effectiveWorkingHours: invalid working hours %q-%q, falling back to defaults %s-%s",
			*day.OpenTime, *day.CloseTime, open, close)
		return open, close, true
	}

	return dayOpen, dayClose, true
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
