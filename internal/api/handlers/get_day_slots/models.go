package get_day_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	getDaySlots "github.com/m04kA/GMS-SessionService/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date      string         `json:"date"`
	StudioID  int64          `json:"studioId"`
	MachineID *int64         `json:"machineId,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	Label             string `json:"label"`     // "09:00 - 09:30"
	StartTime         string `json:"startTime"` // "09:00"
	DurationMinutes   int    `json:"durationMinutes"`
	AvailableMachines int    `json:"availableMachines"`
	TotalMachines     int    `json:"totalMachines"`
}

// ToUseCaseRequest строит запрос use case из path и query параметров
func ToUseCaseRequest(studioID int64, query url.Values) (*getDaySlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getDaySlots.Request{
		StudioID: studioID,
		Date:     date,
	}

	if machineIDStr := query.Get("machineId"); machineIDStr != "" {
		machineID, err := strconv.ParseInt(machineIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.MachineID = &machineID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Label:             slot.Label,
			StartTime:         slot.StartTime.String(),
			DurationMinutes:   slot.DurationMinutes,
			AvailableMachines: slot.AvailableMachines,
			TotalMachines:     slot.TotalMachines,
		}
	}

	return &DaySlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		StudioID:  resp.StudioID,
		MachineID: resp.MachineID,
		Slots:     slots,
	}
}
