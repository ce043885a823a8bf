package domain

import (
	"time"

	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// SessionStatus represents the status of a training session
type SessionStatus string

const (
	StatusScheduled  SessionStatus = "scheduled"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
)

// Session represents a training session booked on a machine
type Session struct {
	ID              int64
	MemberID        int64
	StudioID        int64
	MachineID       int64 // ID тренажера, который занимает занятие
	SessionDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          SessionStatus

	// Denormalized data for history
	MachineName *string
	MemberName  *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the session still occupies its time interval
// Только отмененные занятия освобождают интервал: завершенные и идущие
// занятия продолжают учитываться при проверке пересечений
func (s *Session) IsActive() bool {
	return s.Status != StatusCancelled
}

// CanBeCancelled returns true if the session can be cancelled
func (s *Session) CanBeCancelled() bool {
	return s.Status == StatusScheduled
}

// CanBeRescheduled returns true if the session can be moved to another slot
func (s *Session) CanBeRescheduled() bool {
	return s.Status == StatusScheduled
}

// IsCancelled returns true if the session has been cancelled
func (s *Session) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// StartsAt возвращает момент начала занятия
func (s *Session) StartsAt() (time.Time, error) {
	return s.StartTime.OnDate(s.SessionDate)
}

// EndsAt возвращает момент окончания занятия (полуоткрытый интервал [start, end))
func (s *Session) EndsAt() (time.Time, error) {
	start, err := s.StartsAt()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(s.DurationMinutes) * time.Minute), nil
}

// StudioSessionsFilter фильтр для получения занятий студии
type StudioSessionsFilter struct {
	StudioID         int64          // Обязательный параметр
	MachineID        *int64         // Фильтр по тренажеру (опционально, если nil - все тренажеры)
	StartDate        *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate          *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status           *SessionStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные занятия
}
