package models

import (
	"errors"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")
)

// Request модели

// CancelSessionRequest запрос на отмену занятия
type CancelSessionRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса занятия
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetMemberSessionsRequest запрос на получение занятий клиента
type GetMemberSessionsRequest struct {
	MemberID int64   `json:"memberId"`
	UserID   int64   `json:"userId"`
	Status   *string `json:"status,omitempty"`
}

// GetStudioSessionsRequest запрос на получение занятий студии
type GetStudioSessionsRequest struct {
	UserID           int64      `json:"userId"`
	StudioID         int64      `json:"studioId"`
	MachineID        *int64     `json:"machineId,omitempty"`        // Фильтр по тренажёру (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые занятия
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStudioSessionsRequest) ToDomainFilter() (domain.StudioSessionsFilter, error) {
	filter := domain.StudioSessionsFilter{
		StudioID:         r.StudioID,
		MachineID:        r.MachineID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными занятия
type SessionResponse struct {
	ID              int64  `json:"id"`
	MemberID        int64  `json:"memberId"`
	StudioID        int64  `json:"studioId"`
	MachineID       int64  `json:"machineId"`
	SessionDate     string `json:"sessionDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	MachineName *string `json:"machineName,omitempty"`
	MemberName  *string `json:"memberName,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком занятий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		MemberID:           s.MemberID,
		StudioID:           s.StudioID,
		MachineID:          s.MachineID,
		SessionDate:        s.SessionDate.Format(domain.DateFormat),
		StartTime:          s.StartTime.String(),
		DurationMinutes:    s.DurationMinutes,
		Status:             string(s.Status),
		MachineName:        s.MachineName,
		MemberName:         s.MemberName,
		Notes:              s.Notes,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	if sessions == nil {
		return &SessionListResponse{
			Sessions: []SessionResponse{},
		}
	}

	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, len(sessions)),
	}

	for i, session := range sessions {
		if sessionResp := FromDomainSession(session); sessionResp != nil {
			resp.Sessions[i] = *sessionResp
		}
	}

	return resp
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus с валидацией
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
