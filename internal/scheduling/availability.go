package scheduling

import (
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
)

// ConflictResult результат проверки доступности интервала
type ConflictResult struct {
	Available bool
	Conflicts []*domain.Session // В порядке следования во входном списке
	Message   string            // Опциональное человекочитаемое описание
}

// SessionConflicts возвращает список занятий, пересекающихся с предложенным
// интервалом [start, end), сохраняя их порядок во входном списке
//
// Из рассмотрения исключаются:
//   - отмененные занятия (только статус cancelled, завершенные занятия
//     продолжают занимать свой интервал);
//   - занятие с ID равным excludeID (повторная проверка при редактировании,
//     чтобы занятие не конфликтовало само с собой).
//
// Корректность входного интервала (start < end) - ответственность вызывающей
// стороны, валидация выполняется до обращения к этому пакету
func SessionConflicts(start, end time.Time, sessions []*domain.Session, excludeID *int64) []*domain.Session {
	proposed := Interval{Start: start, End: end}

	conflicts := make([]*domain.Session, 0)
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		if excludeID != nil && session.ID == *excludeID {
			continue
		}

		sessionStart, err := session.StartsAt()
		if err != nil {
			// Если не можем вычислить границы занятия, пропускаем
			continue
		}
		sessionEnd, err := session.EndsAt()
		if err != nil {
			continue
		}

		if Overlaps(proposed, Interval{Start: sessionStart, End: sessionEnd}) {
			conflicts = append(conflicts, session)
		}
	}

	return conflicts
}

// IsTimeSlotAvailable возвращает true, если предложенный интервал [start, end)
// не пересекается ни с одним активным занятием
//
// Инвариант: IsTimeSlotAvailable == (len(SessionConflicts) == 0)
func IsTimeSlotAvailable(start, end time.Time, sessions []*domain.Session, excludeID *int64) bool {
	return len(SessionConflicts(start, end, sessions, excludeID)) == 0
}

// CheckAvailability выполняет проверку доступности и собирает полный результат
// для отображения оператору, разрешающему конфликт расписания
func CheckAvailability(start, end time.Time, sessions []*domain.Session, excludeID *int64) ConflictResult {
	conflicts := SessionConflicts(start, end, sessions, excludeID)
	return ConflictResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}
}
