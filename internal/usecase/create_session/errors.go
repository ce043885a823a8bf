package create_session

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("create_session: studio not found")

	// ErrMachineNotFound возвращается, когда тренажёр не найден в студии
	ErrMachineNotFound = errors.New("create_session: machine not found")

	// ErrMachineInactive возвращается, когда тренажёр выведен из эксплуатации
	ErrMachineInactive = errors.New("create_session: machine is inactive")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("create_session: member not found")

	// ErrNoActiveSubscription возвращается, когда у участника нет активного абонемента
	ErrNoActiveSubscription = errors.New("create_session: member has no active subscription")

	// ErrInvalidDate возвращается при некорректной дате занятия
	ErrInvalidDate = errors.New("create_session: invalid session date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_session: date is too far in the future")

	// ErrStudioClosed возвращается, когда студия закрыта в указанную дату
	ErrStudioClosed = errors.New("create_session: studio is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда занятие выходит за пределы рабочих часов
	ErrOutsideWorkingHours = errors.New("create_session: session is outside working hours")

	// ErrTimeSlotTaken возвращается, когда интервал на тренажёре уже занят
	ErrTimeSlotTaken = errors.New("create_session: time slot is already taken")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_session: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_session: internal error")
)
