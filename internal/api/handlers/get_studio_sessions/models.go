package get_studio_sessions

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/internal/service/sessions/models"
)

// ToServiceRequest строит запрос сервиса из path и query параметров
//
// Поддерживаемые query параметры:
//   - machineId: фильтр по тренажёру
//   - startDate, endDate: период в формате YYYY-MM-DD
//   - status: фильтр по статусу занятия
//   - includeCancelled: включить отменённые занятия
func ToServiceRequest(studioID, userID int64, query url.Values) (*models.GetStudioSessionsRequest, error) {
	req := &models.GetStudioSessionsRequest{
		StudioID: studioID,
		UserID:   userID,
	}

	if machineIDStr := query.Get("machineId"); machineIDStr != "" {
		machineID, err := strconv.ParseInt(machineIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.MachineID = &machineID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeCancelledStr := query.Get("includeCancelled"); includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
