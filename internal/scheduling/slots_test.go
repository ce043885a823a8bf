package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-SessionService/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{}) {}

// recordLogger запоминает, было ли залогировано предупреждение
type recordLogger struct {
	warns int
}

func (l *recordLogger) Info(string, ...interface{}) {}
func (l *recordLogger) Warn(string, ...interface{}) { l.warns++ }

func TestGenerateSlots_DefaultHours(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(date, nil, domain.DefaultSlotDurationMinutes, noopLogger{})

	// Дефолтные часы 09:00-24:00, шаг 30 минут: (24-9)*2 = 30 слотов
	require.Len(t, slots, 30)

	assert.Equal(t, "09:00 - 09:30", slots[0].Label())
	assert.Equal(t, "23:30 - 00:00", slots[len(slots)-1].Label())

	// Слоты непрерывны, не пересекаются и имеют фиксированную длительность
	for i, slot := range slots {
		assert.Equal(t, 30*time.Minute, slot.Duration(), "slot %d duration", i)
		if i > 0 {
			assert.True(t, slot.Start.Equal(slots[i-1].End), "slot %d is not contiguous", i)
			assert.False(t, Overlaps(slot, slots[i-1]), "slot %d overlaps previous", i)
		}
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	day := &DayHours{IsOpen: true, OpenTime: "08:00", CloseTime: "22:00"}

	first := GenerateSlots(date, day, 45, noopLogger{})
	second := GenerateSlots(date, day, 45, noopLogger{})

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Start.Equal(second[i].Start))
		assert.True(t, first[i].End.Equal(second[i].End))
		assert.Equal(t, first[i].Label(), second[i].Label())
	}
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	date := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC) // воскресенье

	slots := GenerateSlots(date, &DayHours{IsOpen: false}, 30, noopLogger{})

	assert.Empty(t, slots)
}

func TestGenerateSlots_CustomHours(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	day := &DayHours{IsOpen: true, OpenTime: "10:00", CloseTime: "13:00"}

	slots := GenerateSlots(date, day, 60, noopLogger{})

	require.Len(t, slots, 3)
	assert.Equal(t, "10:00 - 11:00", slots[0].Label())
	assert.Equal(t, "12:00 - 13:00", slots[2].Label())
}

func TestGenerateSlots_PartialSlotNotEmitted(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	day := &DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "10:45"}

	slots := GenerateSlots(date, day, 30, noopLogger{})

	// 09:00-09:30, 09:30-10:00, 10:00-10:30; слот 10:30-11:00 вышел бы за закрытие
	require.Len(t, slots, 3)
	assert.Equal(t, "10:00 - 10:30", slots[len(slots)-1].Label())
}

func TestGenerateSlots_FallbackIsLogged(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	log := &recordLogger{}
	GenerateSlots(date, nil, 30, log)
	assert.Equal(t, 1, log.warns, "missing config fallback must be observable")

	log = &recordLogger{}
	broken := &DayHours{IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"}
	slots := GenerateSlots(date, broken, 30, log)
	assert.Equal(t, 1, log.warns, "unusable config fallback must be observable")
	assert.Len(t, slots, 30, "unusable config falls back to default hours")
}

func TestGenerateSlots_DefaultSlotDuration(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	day := &DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "10:00"}

	slots := GenerateSlots(date, day, 0, noopLogger{})

	require.Len(t, slots, 2)
	assert.Equal(t, 30*time.Minute, slots[0].Duration())
}
