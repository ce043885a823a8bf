package reschedule_session

import (
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	rescheduleSession "github.com/m04kA/GMS-SessionService/internal/usecase/reschedule_session"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// RescheduleSessionRequest HTTP request model
type RescheduleSessionRequest struct {
	SessionDate     string `json:"sessionDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID              int64   `json:"id"`
	MemberID        int64   `json:"memberId"`
	StudioID        int64   `json:"studioId"`
	MachineID       int64   `json:"machineId"`
	SessionDate     string  `json:"sessionDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	MachineName     *string `json:"machineName,omitempty"`
	MemberName      *string `json:"memberName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleSessionRequest) ToUseCaseRequest(sessionID, userID int64) (*rescheduleSession.Request, error) {
	sessionDate, err := time.Parse(domain.DateFormat, r.SessionDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleSession.Request{
		SessionID:       sessionID,
		UserID:          userID,
		Date:            sessionDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:              resp.ID,
		MemberID:        resp.MemberID,
		StudioID:        resp.StudioID,
		MachineID:       resp.MachineID,
		SessionDate:     resp.SessionDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		MachineName:     resp.MachineName,
		MemberName:      resp.MemberName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
