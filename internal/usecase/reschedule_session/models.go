package reschedule_session

import (
	"time"

	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// Request модель запроса на перенос занятия
type Request struct {
	SessionID       int64            // ID переносимого занятия
	UserID          int64            // ID пользователя (из заголовка авторизации)
	Date            time.Time        // Новая дата занятия (без времени)
	StartTime       types.TimeString // Новое время начала (например, "10:00")
	DurationMinutes int              // Новая длительность в минутах (0 = без изменений)
}

// Response модель ответа с перенесённым занятием
type Response struct {
	ID              int64            // ID занятия
	MemberID        int64            // ID участника
	StudioID        int64            // ID студии
	MachineID       int64            // ID тренажёра
	SessionDate     time.Time        // Новая дата занятия
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус занятия

	MachineName *string // Название тренажёра
	MemberName  *string // Имя участника
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
