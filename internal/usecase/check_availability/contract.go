package check_availability

import (
	"context"

	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
)

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioSessionsFilter) ([]*domain.Session, error)
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
