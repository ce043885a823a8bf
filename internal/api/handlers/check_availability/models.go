package check_availability

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	checkAvailability "github.com/m04kA/GMS-SessionService/internal/usecase/check_availability"
	"github.com/m04kA/GMS-SessionService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool               `json:"available"`
	Message   string             `json:"message"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ConflictResponse HTTP модель пересекающегося занятия
type ConflictResponse struct {
	SessionID       int64  `json:"sessionId"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToUseCaseRequest строит запрос use case из path и query параметров
//
// Обязательные query параметры: machineId, date, startTime, durationMinutes.
// Опциональный excludeSessionId исключает занятие из проверки (сценарий переноса).
func ToUseCaseRequest(studioID int64, query url.Values) (*checkAvailability.Request, error) {
	machineID, err := strconv.ParseInt(query.Get("machineId"), 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		return nil, err
	}

	durationMinutes, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		StudioID:        studioID,
		MachineID:       machineID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
	}

	if excludeStr := query.Get("excludeSessionId"); excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeSessionID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, len(resp.Conflicts))
	for i, c := range resp.Conflicts {
		conflicts[i] = ConflictResponse{
			SessionID:       c.SessionID,
			StartTime:       c.StartTime.String(),
			DurationMinutes: c.DurationMinutes,
			Status:          c.Status,
		}
	}

	return &AvailabilityResponse{
		Available: resp.Available,
		Message:   resp.Message,
		Conflicts: conflicts,
	}
}
