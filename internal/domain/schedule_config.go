package domain

import "time"

// StudioScheduleConfig represents the scheduling configuration for a studio
// Supports hierarchical configuration:
// 1. Machine-specific (studio_id, machine_id)
// 2. Studio-wide (studio_id, NULL)
type StudioScheduleConfig struct {
	ID                      int64
	StudioID                int64
	MachineID               *int64 // NULL = config for all machines
	SlotDurationMinutes     int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsStudioWide returns true if this is a studio-wide configuration
func (c *StudioScheduleConfig) IsStudioWide() bool {
	return c.MachineID == nil
}

// IsMachineSpecific returns true if this configuration is for a specific machine
func (c *StudioScheduleConfig) IsMachineSpecific() bool {
	return c.MachineID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance sessions can be booked
func (c *StudioScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultScheduleConfig возвращает конфигурацию с дефолтными значениями
// Используется, когда для студии конфигурация не задана
func DefaultScheduleConfig(studioID int64) *StudioScheduleConfig {
	return &StudioScheduleConfig{
		StudioID:                studioID,
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
