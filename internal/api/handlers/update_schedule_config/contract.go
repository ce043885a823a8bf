package update_schedule_config

import (
	"context"

	"github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
	Delete(ctx context.Context, id int64, studioID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
