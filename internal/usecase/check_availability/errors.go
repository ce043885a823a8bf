package check_availability

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("check_availability: studio not found")

	// ErrMachineNotFound возвращается, когда тренажёр не найден в студии
	ErrMachineNotFound = errors.New("check_availability: machine not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
