package reschedule_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("reschedule_session: session not found")

	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("reschedule_session: studio not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на перенос
	ErrAccessDenied = errors.New("reschedule_session: access denied")

	// ErrCannotReschedule возвращается, когда занятие нельзя перенести в текущем статусе
	ErrCannotReschedule = errors.New("reschedule_session: session cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной новой дате занятия
	ErrInvalidDate = errors.New("reschedule_session: invalid session date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_session: date is too far in the future")

	// ErrStudioClosed возвращается, когда студия закрыта в указанную дату
	ErrStudioClosed = errors.New("reschedule_session: studio is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда занятие выходит за пределы рабочих часов
	ErrOutsideWorkingHours = errors.New("reschedule_session: session is outside working hours")

	// ErrTimeSlotTaken возвращается, когда новый интервал на тренажёре уже занят
	ErrTimeSlotTaken = errors.New("reschedule_session: time slot is already taken")

	// ErrTooLateToBook возвращается, когда перенос нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("reschedule_session: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_session: internal error")
)
