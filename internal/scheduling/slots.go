package scheduling

import (
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// DayHours рабочие часы зала на один день недели
// Поставляется внешним источником конфигурации (StudioService)
type DayHours struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// GenerateSlots генерирует упорядоченный список слотов фиксированной длины
// на указанную дату в пределах рабочих часов [OpenTime, CloseTime)
//
// Правила:
//   - day == nil (конфигурация недоступна) - применяются дефолтные часы
//     09:00-24:00, факт применения логируется, чтобы не маскировать
//     проблемы с источником конфигурации;
//   - день помечен закрытым - возвращается пустой список (не ошибка);
//   - слот, который вышел бы за время закрытия, не генерируется;
//   - slotMinutes <= 0 - применяется дефолтная длительность 30 минут.
//
// Результат детерминирован: повторный вызов с теми же аргументами дает
// идентичный список, зависимости от текущего времени нет
func GenerateSlots(date time.Time, day *DayHours, slotMinutes int, log Logger) []Interval {
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotDurationMinutes
	}

	openTime := domain.DefaultOpenTime
	closeTime := domain.DefaultCloseTime

	switch {
	case day == nil:
		if log != nil {
			log.Warn("scheduling: working hours unavailable for %s, falling back to defaults %s-%s",
				date.Format(domain.DateFormat), openTime, closeTime)
		}
	case !day.IsOpen:
		return []Interval{}
	case day.OpenTime.Validate() != nil || day.CloseTime.Validate() != nil || !day.OpenTime.IsBefore(day.CloseTime):
		// Конфигурация есть, но непригодна - ведем себя как при её отсутствии
		if log != nil {
			log.Warn("scheduling: unusable working hours for %s (open=%q close=%q), falling back to defaults %s-%s",
				date.Format(domain.DateFormat), day.OpenTime, day.CloseTime, openTime, closeTime)
		}
	default:
		openTime = day.OpenTime
		closeTime = day.CloseTime
	}

	// Ошибки невозможны: границы уже провалидированы выше
	dayStart, _ := openTime.OnDate(date)
	dayEnd, _ := closeTime.OnDate(date)

	step := time.Duration(slotMinutes) * time.Minute

	slots := make([]Interval, 0)
	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(step) {
		slotEnd := cur.Add(step)
		if slotEnd.After(dayEnd) {
			break
		}
		slots = append(slots, Interval{Start: cur, End: slotEnd})
	}

	return slots
}
