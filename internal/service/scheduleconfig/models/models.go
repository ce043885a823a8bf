package models

import (
	"time"

	"github.com/m04kA/GMS-SessionService/internal/domain"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации расписания
type UpsertConfigRequest struct {
	UserID                  int64  `json:"userId"`
	StudioID                int64  `json:"studioId"`
	MachineID               *int64 `json:"machineId,omitempty"`     // NULL = для всех тренажёров студии
	SlotDurationMinutes     int    `json:"slotDurationMinutes"`     // 15, 30, 60, etc.
	AdvanceBookingDays      int    `json:"advanceBookingDays"`      // 0 = без ограничений
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"` // Минимальное время до начала занятия
}

// GetConfigRequest запрос на получение эффективной конфигурации
// MachineID может быть nil - тогда возвращается конфигурация уровня студии
type GetConfigRequest struct {
	StudioID  int64  `json:"studioId"`
	MachineID *int64 `json:"machineId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID                      int64      `json:"id,omitempty"`
	StudioID                int64      `json:"studioId"`
	MachineID               *int64     `json:"machineId,omitempty"`
	SlotDurationMinutes     int        `json:"slotDurationMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"` // true, если настройки не заданы и применены значения по умолчанию
	CreatedAt               *time.Time `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.StudioScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                      c.ID,
		StudioID:                c.StudioID,
		MachineID:               c.MachineID,
		SlotDurationMinutes:     c.SlotDurationMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
	}

	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDefaultConfig строит DTO для конфигурации по умолчанию
func FromDefaultConfig(studioID int64, machineID *int64) *ConfigResponse {
	return &ConfigResponse{
		StudioID:                studioID,
		MachineID:               machineID,
		SlotDurationMinutes:     domain.DefaultSlotDurationMinutes,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		IsDefault:               true,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.StudioScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.StudioScheduleConfig {
	return &domain.StudioScheduleConfig{
		StudioID:                r.StudioID,
		MachineID:               r.MachineID,
		SlotDurationMinutes:     r.SlotDurationMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
