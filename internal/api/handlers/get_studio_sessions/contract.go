package get_studio_sessions

import (
	"context"

	"github.com/m04kA/GMS-SessionService/internal/service/sessions/models"
)

type SessionService interface {
	GetStudioSessions(ctx context.Context, req *models.GetStudioSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
