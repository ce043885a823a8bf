package get_day_slots

import (
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	"github.com/m04kA/GMS-SessionService/internal/scheduling"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// dayHoursFromSchedule конвертирует расписание StudioService во внутреннюю модель
// Отсутствие или некорректность времени не обрабатывается здесь -
// fallback на дефолтные часы выполняет scheduling.GenerateSlots
func dayHoursFromSchedule(day studioservice.DaySchedule) *scheduling.DayHours {
	hours := &scheduling.DayHours{IsOpen: day.IsOpen}
	if day.OpenTime != nil {
		hours.OpenTime = types.TimeString(*day.OpenTime)
	}
	if day.CloseTime != nil {
		hours.CloseTime = types.TimeString(*day.CloseTime)
	}
	return hours
}

// filterSlotsByNotice отбрасывает слоты, запись на которые уже нарушила бы
// минимальное время до начала занятия. Применяется только для сегодняшней даты
func filterSlotsByNotice(slots []scheduling.Interval, date, now time.Time, minNoticeMinutes int) []scheduling.Interval {
	if !isSameDay(date, now) {
		return slots
	}

	// Сравниваем настенное время, как при валидации записи:
	// дата запроса и серверное now могут быть в разных локациях
	cutoff, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Порог выходит за пределы суток - сегодня записаться уже нельзя
		return []scheduling.Interval{}
	}

	filtered := make([]scheduling.Interval, 0, len(slots))
	for _, slot := range slots {
		if !types.NewTimeString(slot.Start).IsBefore(cutoff) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// calculateSlotAvailability вычисляет количество свободных тренажёров для каждого слота
// Тренажёр свободен в слоте, если ни одно его актуальное занятие не пересекается со слотом
func calculateSlotAvailability(
	slots []scheduling.Interval,
	machines []studioservice.Machine,
	sessions []*domain.Session,
) []Slot {
	// Группируем занятия по тренажёрам
	byMachine := make(map[int64][]*domain.Session)
	for _, session := range sessions {
		byMachine[session.MachineID] = append(byMachine[session.MachineID], session)
	}

	result := make([]Slot, len(slots))
	for i, slot := range slots {
		available := 0
		for _, machine := range machines {
			if scheduling.IsTimeSlotAvailable(slot.Start, slot.End, byMachine[machine.ID], nil) {
				available++
			}
		}

		result[i] = Slot{
			Label:             slot.Label(),
			StartTime:         types.NewTimeString(slot.Start),
			DurationMinutes:   int(slot.Duration().Minutes()),
			AvailableMachines: available,
			TotalMachines:     len(machines),
		}
	}

	return result
}

// activeMachines отбирает только работающие тренажёры
func activeMachines(machines []studioservice.Machine) []studioservice.Machine {
	result := make([]studioservice.Machine, 0, len(machines))
	for _, machine := range machines {
		if machine.IsActive {
			result = append(result, machine)
		}
	}
	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
