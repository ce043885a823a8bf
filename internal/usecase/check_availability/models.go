package check_availability

import (
	"time"

	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// Request модель запроса на проверку доступности интервала
type Request struct {
	StudioID         int64            // ID студии
	MachineID        int64            // ID тренажёра
	Date             time.Time        // Дата занятия (без времени)
	StartTime        types.TimeString // Время начала (например, "10:00")
	DurationMinutes  int              // Длительность занятия в минутах
	ExcludeSessionID *int64           // ID занятия, исключаемого из проверки (для переноса)
}

// Response модель ответа с результатом проверки
type Response struct {
	Available bool       // true, если интервал свободен
	Message   string     // Человекочитаемое описание результата
	Conflicts []Conflict // Занятия, пересекающиеся с запрошенным интервалом
}

// Conflict модель пересекающегося занятия
type Conflict struct {
	SessionID       int64            // ID занятия
	StartTime       types.TimeString // Время начала занятия
	DurationMinutes int              // Длительность занятия
	Status          string           // Статус занятия
}
