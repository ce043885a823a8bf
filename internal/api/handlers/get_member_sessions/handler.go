package get_member_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-SessionService/internal/api/handlers"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	"github.com/m04kA/GMS-SessionService/internal/service/sessions"
)

const (
	msgMissingUserID   = "отсутствует идентификатор пользователя"
	msgInvalidMemberID = "некорректный идентификатор участника"
	msgInvalidStatus   = "некорректный статус занятия"
	msgAccessDenied    = "доступ запрещён"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{memberId}/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /members/{id}/sessions - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{id}/sessions - Invalid member ID: %s", vars["memberId"])
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	req := ToServiceRequest(memberID, userID, r.URL.Query())

	result, err := h.service.GetMemberSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /members/{id}/sessions - Access denied: member_id=%d, user_id=%d", memberID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/sessions - Invalid status filter: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /members/{id}/sessions - Failed to get sessions: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/sessions - Sessions retrieved: member_id=%d, count=%d", memberID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
