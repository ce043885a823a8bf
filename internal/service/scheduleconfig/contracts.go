package scheduleconfig

import (
	"context"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByStudioAndMachine(ctx context.Context, studioID int64, machineID *int64) (*domain.StudioScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, studioID int64, machineID *int64) (*domain.StudioScheduleConfig, error)
	GetAllByStudio(ctx context.Context, studioID int64) ([]*domain.StudioScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.StudioScheduleConfig) (*domain.StudioScheduleConfig, error)
	Delete(ctx context.Context, id int64) error
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetStudio(ctx context.Context, studioID int64) (*studioservice.Studio, error)
	GetMachine(ctx context.Context, studioID, machineID int64) (*studioservice.Machine, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
