// Package scheduling чистая модель слотов и пересечений временных интервалов
//
// Все функции пакета синхронные и не имеют состояния: они работают над
// снимком данных, переданным вызывающей стороной, и не обращаются к хранилищу.
// Интервалы полуоткрытые [start, end): занятие, заканчивающееся в 10:00,
// не пересекается с занятием, начинающимся в 10:00
package scheduling

import (
	"fmt"
	"time"
)

// Interval полуоткрытый временной интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Label возвращает подпись интервала в формате "HH:MM - HH:MM"
// Конец интервала, приходящийся на полночь, отображается как "00:00"
func (i Interval) Label() string {
	return fmt.Sprintf("%s - %s", i.Start.Format("15:04"), i.End.Format("15:04"))
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps возвращает true, если интервалы a и b пересекаются
// Используются строгие неравенства: интервалы, граничащие концами,
// пересечением не считаются, одинаковые интервалы - считаются
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
