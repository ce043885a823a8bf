package get_member_sessions

import (
	"context"

	"github.com/m04kA/GMS-SessionService/internal/service/sessions/models"
)

type SessionService interface {
	GetMemberSessions(ctx context.Context, req *models.GetMemberSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
