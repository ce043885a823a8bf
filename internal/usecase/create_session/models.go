package create_session

import (
	"time"

	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// Request модель запроса на запись на занятие
type Request struct {
	MemberID        int64            // ID участника (из заголовка авторизации)
	StudioID        int64            // ID студии
	MachineID       int64            // ID тренажёра
	Date            time.Time        // Дата занятия (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность занятия в минутах (0 = длительность слота из конфигурации)
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным занятием
type Response struct {
	ID              int64            // ID созданного занятия
	MemberID        int64            // ID участника
	StudioID        int64            // ID студии
	MachineID       int64            // ID тренажёра
	SessionDate     time.Time        // Дата занятия
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус занятия

	// Денормализованные данные
	MachineName *string // Название тренажёра
	MemberName  *string // Имя участника
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
