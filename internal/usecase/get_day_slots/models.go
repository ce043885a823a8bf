package get_day_slots

import (
	"time"

	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// Request модель запроса на получение слотов на день
type Request struct {
	StudioID  int64     // ID студии
	MachineID *int64    // ID тренажёра (nil = по всем тренажёрам студии)
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	StudioID  int64     // ID студии
	MachineID *int64    // ID тренажёра (если запрашивался конкретный)
	Slots     []Slot    // Список слотов
}

// Slot модель временного слота
type Slot struct {
	Label             string           // Человекочитаемая метка, например "09:00 - 09:30"
	StartTime         types.TimeString // Время начала слота (например, "09:00")
	DurationMinutes   int              // Длительность слота в минутах
	AvailableMachines int              // Количество свободных тренажёров в этот слот
	TotalMachines     int              // Общее количество активных тренажёров
}
