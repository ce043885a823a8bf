package sessions

import "errors"

var (
	// ErrSessionNotFound занятие не найдено
	ErrSessionNotFound = errors.New("session not found")

	// ErrStudioNotFound студия не найдена
	ErrStudioNotFound = errors.New("studio not found")

	// ErrAccessDenied доступ запрещён
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel занятие нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("session cannot be cancelled")

	// ErrInvalidStatus недопустимый статус или переход статуса
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
