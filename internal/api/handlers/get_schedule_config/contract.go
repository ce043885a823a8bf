package get_schedule_config

import (
	"context"

	"github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	GetEffective(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error)
	GetAllByStudio(ctx context.Context, studioID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
