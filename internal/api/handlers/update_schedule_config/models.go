package update_schedule_config

import "github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig/models"

// UpsertConfigRequest HTTP request model
type UpsertConfigRequest struct {
	MachineID               *int64 `json:"machineId,omitempty"` // null = конфигурация уровня студии
	SlotDurationMinutes     int    `json:"slotDurationMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertConfigRequest) ToServiceRequest(studioID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                  userID,
		StudioID:                studioID,
		MachineID:               r.MachineID,
		SlotDurationMinutes:     r.SlotDurationMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
